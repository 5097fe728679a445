package domain

// Prediction is one autocomplete candidate returned to the form.
type Prediction struct {
	Name    string `json:"name"`
	PlaceID string `json:"place_id"`
}
