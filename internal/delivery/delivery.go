// Package delivery holds the inbound adapters of the service: the REST API and
// the background scheduler. Each one is started by the fx app and stopped by its hook.
package delivery

import "context"

// Delivery is a long-running inbound adapter.
type Delivery interface {
	// Serve blocks until the adapter stops. A graceful stop returns nil.
	Serve(ctx context.Context) error
}
