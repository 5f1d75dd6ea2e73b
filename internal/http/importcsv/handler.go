package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aliyevq/veresiye/internal/http/response"
	"github.com/aliyevq/veresiye/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importNotebook)
}

type rowErrorDTO struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type importResponse struct {
	Imported int           `json:"imported"`
	Failed   int           `json:"failed"`
	Failures []rowErrorDTO `json:"failures,omitempty"`
}

func (h *Handler) importNotebook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Failed to parse form", []string{err.Error()})
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatNotebook
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.Fail(w, r, http.StatusBadRequest, "file field is required", nil)
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), format, file)
	if err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Import failed", []string{err.Error()})
		return
	}

	resp := importResponse{
		Imported: len(result.Imported),
		Failed:   len(result.Failures),
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, rowErrorDTO{Name: f.Name, Error: f.Err.Error()})
	}

	response.OK(w, r, http.StatusCreated, "Notebook imported", resp)
}
