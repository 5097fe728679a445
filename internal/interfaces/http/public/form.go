package public

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sngm3741/business-intake/api/internal/intake/application"
	"github.com/sngm3741/business-intake/api/internal/interfaces/http/common"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type formPageData struct {
	Title         string
	MinQueryRunes int
}

func (h *Handler) formPageHandler() http.HandlerFunc {
	data := formPageData{
		Title:         "Business Submission",
		MinQueryRunes: application.MinQueryRunes,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		if err := h.formTemplate.Execute(&buf, data); err != nil {
			h.logger.Error("form template render failed", slog.Any("error", err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
