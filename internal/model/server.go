package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the profile server accepts connections on.
// Implementations decide whether connections are wrapped in TLS.
type SecurityLayer interface {
	Listen(network, addr string) (net.Listener, error)
}

// Server is a profile API server.
type Server interface {
	// Start listens through securityLayer and serves until Stop is called.
	// It returns nil after a graceful stop.
	Start(securityLayer SecurityLayer) error
	// Stop waits for in-flight requests until ctx is done.
	Stop(ctx context.Context) error
	// Address is the configured listen address.
	Address() string
}
