package public

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sngm3741/business-intake/api/internal/intake/application"
	"github.com/sngm3741/business-intake/api/internal/intake/domain"
	"github.com/sngm3741/business-intake/api/internal/interfaces/http/common"
)

func newSubmitErrorMapper() *common.ErrorMapper {
	return common.NewErrorMapper().
		WithMapping(common.Is(application.ErrUpstreamTimeout), http.StatusGatewayTimeout, "upstream service timeout").
		WithMapping(common.As[*application.UpstreamStatusError](), http.StatusBadGateway, "upstream service error")
}

func (h *Handler) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw domain.SubmissionPayload
		decoder := json.NewDecoder(io.LimitReader(r.Body, common.MaxSubmissionBody))
		if err := decoder.Decode(&raw); err != nil {
			h.writeDecodeError(w, err)
			return
		}
		if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			common.WriteError(h.logger, w, http.StatusBadRequest, "request body must contain a single JSON object")
			return
		}

		payload, err := domain.NewSubmission(raw)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, common.ErrorResponse{
					Error:   "invalid submission",
					Details: toFieldProblems(verr.Fields),
				})
				return
			}
			h.logger.Error("submission validation failed unexpectedly", slog.Any("error", err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "internal server error")
			return
		}

		if err := h.submissions.Submit(r.Context(), payload); err != nil {
			info := h.submitErrors.Map(err)
			h.logSubmitFailure(err, info)
			common.WriteError(h.logger, w, info.Status, info.Message)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, statusResponse{Status: "success"})
	}
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, common.ErrorResponse{
			Error:   "invalid submission",
			Details: []fieldProblem{{Field: field, Rule: "type"}},
		})
		return
	}
	common.WriteError(h.logger, w, http.StatusBadRequest, "request body must be valid JSON")
}

func (h *Handler) logSubmitFailure(err error, info common.HTTPErrorInfo) {
	var statusErr *application.UpstreamStatusError
	switch {
	case errors.Is(err, application.ErrUpstreamTimeout):
		h.logger.Error("webhook timeout", slog.Any("error", err))
	case errors.As(err, &statusErr):
		h.logger.Error("webhook failed",
			slog.Int("status", statusErr.StatusCode),
			slog.String("body", statusErr.Body))
	default:
		h.logger.Error("unexpected submit error", slog.Any("error", err), slog.Int("status", info.Status))
	}
}
