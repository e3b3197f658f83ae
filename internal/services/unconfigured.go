package services

import (
	"context"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// UnconfiguredCatalog stands in when no catalog credentials are supplied.
// Every search fails with [shared.ErrServiceUnavailable] so the server can
// still run the rest of the API.
type UnconfiguredCatalog struct{}

func (UnconfiguredCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return nil, shared.ErrServiceUnavailable
}

func (UnconfiguredCatalog) Name() string { return "unconfigured" }
