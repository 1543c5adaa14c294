package handler

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	apiContext "github.com/busla/summerhouse-sub003/internal/api/http/context"
	"github.com/busla/summerhouse-sub003/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testClaims = model.Claims{Subject: "sub-1", Email: "a@b.com", Name: "Ada"}

// withClaims stands in for the authenticate middleware.
func withClaims(claims *model.Claims) gin.HandlerFunc {
	manager := apiContext.NewManager()
	return func(c *gin.Context) {
		if claims != nil {
			c.Request = c.Request.WithContext(manager.SetClaimsToContext(c.Request.Context(), *claims))
		}
		c.Next()
	}
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}
