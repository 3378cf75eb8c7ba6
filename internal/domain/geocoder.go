package domain

import "context"

// Resolver converts a free-text place name to coordinates.
type Resolver interface {
	// Resolve looks up a query. A zero-value result with a nil error means
	// the lookup completed but found nothing; callers treat errors and empty
	// results the same way (coordinates stay unset) and never surface either
	// to the end user.
	Resolve(ctx context.Context, query string) (GeocodeResult, error)
}
