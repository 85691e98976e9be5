package ports

import (
	"context"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

// CatalogProvider resolves a playlist ID into its metadata and full
// track list, audio features included. Failures are reported as
// *domain.ExternalServiceError and are never retried by callers; the
// pipeline degrades instead.
type CatalogProvider interface {
	GetPlaylist(ctx context.Context, playlistID string) (domain.Playlist, error)
}
