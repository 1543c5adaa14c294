package token

import "golang.org/x/oauth2"

// BearerValue returns the identity token carried by credential, falling back to its access token.
func BearerValue(credential *oauth2.Token) string {
	if credential == nil {
		return ""
	}
	if idToken, ok := credential.Extra("id_token").(string); ok && idToken != "" {
		return idToken
	}
	return credential.AccessToken
}
