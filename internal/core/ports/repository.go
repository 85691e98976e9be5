package ports

import (
	"context"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

// ResultRepository is the per-session single-slot cache of the last
// AnalysisResult. Save replaces the session's slot; a new submission
// invalidates whatever was there before.
type ResultRepository interface {
	Save(ctx context.Context, result domain.AnalysisResult) error
	LatestBySession(ctx context.Context, sessionID string) (domain.AnalysisResult, error)
}
