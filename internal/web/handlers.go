package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/nyayalabs/nyaya/internal/assistant"
	"github.com/nyayalabs/nyaya/internal/draft"
	"github.com/nyayalabs/nyaya/internal/retrieval"
)

// maxUploadBytes caps document uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// Assistant is the consumer-side contract the handlers need from the
// pipeline.
type Assistant interface {
	Answer(ctx context.Context, query string) (string, error)
	Validate(ctx context.Context, pdf []byte) (*assistant.Validation, error)
}

// DraftStore is what the download handler needs from the draft store.
type DraftStore interface {
	Get(id uuid.UUID) (*draft.Draft, error)
	Remove(id uuid.UUID)
}

type handlers struct {
	assistant Assistant
	drafts    DraftStore
	logger    *slog.Logger
}

// health answers liveness probes.
func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer string `json:"answer"`
}

func (h *handlers) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.assistant.Answer(r.Context(), req.Query)
	if err != nil {
		h.writeAnswerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Answer: answer})
}

type validateResponse struct {
	DocumentType     string `json:"document_type"`
	DocumentTypeName string `json:"document_type_name"`
	Summary          string `json:"summary"`
	Discrepancies    string `json:"discrepancies"`
	IncorrectClauses string `json:"incorrect_clauses"`
	CorrectedClauses string `json:"corrected_clauses"`
	MissingClauses   string `json:"missing_clauses"`
	Draft            string `json:"draft"`
	DraftID          string `json:"draft_id,omitempty"`
	DraftURL         string `json:"draft_url,omitempty"`
	DraftFilename    string `json:"draft_filename,omitempty"`
}

// validate accepts a single PDF in the multipart field "document". The
// upload is spooled to a per-request temporary file which is removed
// when the handler returns, success or failure.
func (h *handlers) validate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing document upload")
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "nyaya-upload-*.pdf")
	if err != nil {
		h.logger.Error("creating upload temp file", "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("removing upload temp file", "path", tmpPath, "error", err)
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		h.logger.Error("spooling upload", "error", err)
		writeError(w, http.StatusBadRequest, "upload failed")
		return
	}
	if err := tmp.Close(); err != nil {
		h.logger.Error("closing upload temp file", "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	pdf, err := os.ReadFile(tmpPath)
	if err != nil {
		h.logger.Error("reading upload", "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	h.logger.Debug("validating document", "filename", header.Filename, "bytes", len(pdf))

	v, err := h.assistant.Validate(r.Context(), pdf)
	if err != nil {
		h.writeValidateError(w, err)
		return
	}

	resp := validateResponse{
		DocumentType:     string(v.Type),
		DocumentTypeName: v.Type.DisplayName(),
		Summary:          v.Analysis.Summary,
		Discrepancies:    v.Analysis.Discrepancies,
		IncorrectClauses: v.Analysis.IncorrectClauses,
		CorrectedClauses: v.Analysis.CorrectedClauses,
		MissingClauses:   v.Analysis.MissingClauses,
		Draft:            v.Analysis.Draft,
	}
	if v.Draft != nil {
		resp.DraftID = v.Draft.ID.String()
		resp.DraftURL = "/api/drafts/" + v.Draft.ID.String()
		resp.DraftFilename = v.Draft.Filename
	}
	writeJSON(w, http.StatusOK, resp)
}

// download streams a draft as a .docx attachment. The draft is removed
// after a successful transfer: its lifetime ends at download.
func (h *handlers) download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid draft id")
		return
	}

	d, err := h.drafts.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}

	f, err := os.Open(d.Path)
	if err != nil {
		h.logger.Error("opening draft file", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "draft unavailable")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", draft.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+d.Filename+`"`)
	if _, err := io.Copy(w, f); err != nil {
		// Headers are already out; nothing to do but log.
		h.logger.Debug("streaming draft", "id", id, "error", err)
		return
	}

	h.drafts.Remove(id)
}

func (h *handlers) writeAnswerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assistant.ErrEmptyQuery), errors.Is(err, assistant.ErrQueryTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, retrieval.ErrContextUnavailable):
		writeError(w, http.StatusBadGateway, "legal context unavailable")
	default:
		h.logger.Error("query pipeline failed", "error", err)
		writeError(w, http.StatusBadGateway, "request failed")
	}
}

func (h *handlers) writeValidateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assistant.ErrEmptyDocument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, retrieval.ErrContextUnavailable):
		writeError(w, http.StatusBadGateway, "legal context unavailable")
	default:
		h.logger.Error("validate pipeline failed", "error", err)
		writeError(w, http.StatusBadGateway, "request failed")
	}
}
