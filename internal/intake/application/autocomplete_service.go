package application

import (
	"context"
	"unicode/utf8"

	"github.com/sngm3741/business-intake/api/internal/intake/domain"
)

type autocompleteService struct {
	places PlacesLookup
}

// NewAutocompleteService creates an AutocompleteService backed by places.
func NewAutocompleteService(places PlacesLookup) AutocompleteService {
	return &autocompleteService{places: places}
}

// Suggest returns an empty list without a lookup for queries shorter than MinQueryRunes.
func (s *autocompleteService) Suggest(ctx context.Context, query string) ([]domain.Prediction, error) {
	if utf8.RuneCountInString(query) < MinQueryRunes {
		return []domain.Prediction{}, nil
	}
	predictions, err := s.places.Autocomplete(ctx, query)
	if err != nil {
		return nil, err
	}
	if predictions == nil {
		predictions = []domain.Prediction{}
	}
	return predictions, nil
}
