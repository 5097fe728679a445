package application

import (
	"context"

	"github.com/sngm3741/business-intake/api/internal/intake/domain"
)

// MinQueryRunes is the shortest query forwarded to the places API.
const MinQueryRunes = 2

// PlacesLookup is the outbound port to the places autocomplete API.
type PlacesLookup interface {
	Autocomplete(ctx context.Context, query string) ([]domain.Prediction, error)
}

// SubmissionForwarder is the outbound port to the workflow webhook.
type SubmissionForwarder interface {
	Forward(ctx context.Context, payload domain.SubmissionPayload) error
}

// AutocompleteService resolves free-text company queries into predictions.
type AutocompleteService interface {
	Suggest(ctx context.Context, query string) ([]domain.Prediction, error)
}

// SubmissionService hands validated submissions to the webhook.
type SubmissionService interface {
	Submit(ctx context.Context, payload domain.SubmissionPayload) error
}
