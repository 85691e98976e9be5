package ports

import "context"

// TextGenerator sends one prompt to the generative model and returns the
// raw reply text. It surfaces failure immediately as
// *domain.ExternalServiceError so the pipeline can take its fallback
// path; no retries are guaranteed to succeed.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
