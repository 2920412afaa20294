// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is implemented by every transport server the application exposes.
type Delivery interface {
	// Serve blocks while the server accepts traffic.
	Serve(ctx context.Context) error
}
