package public

import (
	"html/template"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/business-intake/api/internal/intake/application"
	"github.com/sngm3741/business-intake/api/internal/interfaces/http/common"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger        *slog.Logger
	autocomplete  application.AutocompleteService
	submissions   application.SubmissionService
	formTemplate  *template.Template
	submitErrors  *common.ErrorMapper
	suggestErrors *common.ErrorMapper
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger       *slog.Logger
	Autocomplete application.AutocompleteService
	Submissions  application.SubmissionService
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:        logger,
		autocomplete:  cfg.Autocomplete,
		submissions:   cfg.Submissions,
		formTemplate:  formTemplate,
		submitErrors:  newSubmitErrorMapper(),
		suggestErrors: newSuggestErrorMapper(),
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.formPageHandler())
	r.Get("/autocomplete", h.autocompleteHandler())
	r.Post("/submit", h.submitHandler())
}
