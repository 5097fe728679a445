package public

import (
	"log/slog"
	"net/http"

	"github.com/sngm3741/business-intake/api/internal/interfaces/http/common"
)

// Every lookup failure surfaces as the same 500, timeouts included.
func newSuggestErrorMapper() *common.ErrorMapper {
	return common.NewErrorMapper().
		WithDefault(http.StatusInternalServerError, "autocomplete service unavailable")
}

func (h *Handler) autocompleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "" {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, common.ErrorResponse{
				Error:   "query is required",
				Details: []fieldProblem{{Field: "query", Rule: "min_length"}},
			})
			return
		}

		predictions, err := h.autocomplete.Suggest(r.Context(), query)
		if err != nil {
			info := h.suggestErrors.Map(err)
			h.logger.Error("autocomplete failed", slog.Any("error", err), slog.Int("status", info.Status))
			common.WriteError(h.logger, w, info.Status, info.Message)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, predictions)
	}
}
