package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyayalabs/nyaya/internal/analysis"
	"github.com/nyayalabs/nyaya/internal/assistant"
	"github.com/nyayalabs/nyaya/internal/doctype"
	"github.com/nyayalabs/nyaya/internal/draft"
	"github.com/nyayalabs/nyaya/internal/log"
	"github.com/nyayalabs/nyaya/internal/retrieval"
)

// stubAssistant implements Assistant with canned behavior.
type stubAssistant struct {
	answer      string
	answerErr   error
	validation  *assistant.Validation
	validateErr error

	lastQuery string
	lastPDF   []byte
}

func (s *stubAssistant) Answer(_ context.Context, query string) (string, error) {
	s.lastQuery = query
	if s.answerErr != nil {
		return "", s.answerErr
	}
	if query == "" {
		return "", assistant.ErrEmptyQuery
	}
	return s.answer, nil
}

func (s *stubAssistant) Validate(_ context.Context, pdf []byte) (*assistant.Validation, error) {
	s.lastPDF = pdf
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return s.validation, nil
}

func newTestServer(t *testing.T, stub *stubAssistant, drafts DraftStore) *Server {
	t.Helper()
	if drafts == nil {
		store, err := draft.NewStore(t.TempDir(), nil)
		require.NoError(t, err)
		drafts = store
	}
	srv, err := NewServer(ServerConfig{
		Assistant:     stub,
		Drafts:        drafts,
		Logger:        log.NewNop(),
		RatePerSecond: 1000,
		Burst:         1000,
	})
	require.NoError(t, err)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubAssistant{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestQuery(t *testing.T) {
	stub := &stubAssistant{answer: "Section 303 covers theft."}
	srv := newTestServer(t, stub, nil)

	body := strings.NewReader(`{"query":"what is theft?"}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "what is theft?", stub.lastQuery)

	var resp struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Section 303 covers theft.", resp.Answer)
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		answerErr  error
		wantStatus int
	}{
		{"malformed body", `{"query": `, nil, http.StatusBadRequest},
		{"unknown field", `{"q":"x"}`, nil, http.StatusBadRequest},
		{"empty query", `{"query":""}`, nil, http.StatusBadRequest},
		{"query too long", `{"query":"x"}`, assistant.ErrQueryTooLong, http.StatusBadRequest},
		{"context unavailable", `{"query":"x"}`, retrieval.ErrContextUnavailable, http.StatusBadGateway},
		{"opaque failure", `{"query":"x"}`, errors.New("boom"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubAssistant{answerErr: tt.answerErr}, nil)

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func multipartPDF(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, "upload.pdf")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestValidate(t *testing.T) {
	store, err := draft.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	d, err := store.Save(doctype.RentalAgreement, "DRAFT TEXT")
	require.NoError(t, err)

	stub := &stubAssistant{validation: &assistant.Validation{
		Type: doctype.RentalAgreement,
		Analysis: analysis.Result{
			Summary: "A rental agreement.",
			Draft:   "DRAFT TEXT",
		},
		Draft: d,
	}}
	srv := newTestServer(t, stub, store)

	pdf := []byte("%PDF-1.4 content")
	body, contentType := multipartPDF(t, "document", pdf)
	req := httptest.NewRequest(http.MethodPost, "/api/validate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pdf, stub.lastPDF)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rental_agreement", resp["document_type"])
	assert.Equal(t, "A rental agreement.", resp["summary"])
	assert.Equal(t, d.ID.String(), resp["draft_id"])
	assert.Equal(t, "/api/drafts/"+d.ID.String(), resp["draft_url"])
	assert.Equal(t, "rental_agreement.docx", resp["draft_filename"])
}

func TestValidateMissingUpload(t *testing.T) {
	srv := newTestServer(t, &stubAssistant{}, nil)

	body, contentType := multipartPDF(t, "attachment", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/validate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateCleansTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TMPDIR", tmpDir)

	stub := &stubAssistant{validateErr: errors.New("pipeline down")}
	srv := newTestServer(t, stub, nil)

	body, contentType := multipartPDF(t, "document", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/validate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The spooled upload must be gone even though the pipeline failed.
	leftovers, err := filepath.Glob(filepath.Join(tmpDir, "nyaya-upload-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDownload(t *testing.T) {
	store, err := draft.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	d, err := store.Save(doctype.DivorcePetition, "PETITION BODY")
	require.NoError(t, err)

	srv := newTestServer(t, &stubAssistant{}, store)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/drafts/"+d.ID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, draft.MIMEType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "mutual_consent_divorce_petition.docx")

	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text, err := draft.ReadDocxText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "PETITION BODY", text)

	// Single use: the draft is gone after download.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/drafts/"+d.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoFileExists(t, d.Path)
}

func TestDownloadInvalidID(t *testing.T) {
	srv := newTestServer(t, &stubAssistant{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/drafts/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	store, err := draft.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	srv, err := NewServer(ServerConfig{
		Assistant:     &stubAssistant{},
		Drafts:        store,
		Logger:        log.NewNop(),
		RatePerSecond: 0.001,
		Burst:         2,
	})
	require.NoError(t, err)

	var last int
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "198.51.100.7:1234"
		srv.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// A different client has its own bucket.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecovery(t *testing.T) {
	srv := newTestServer(t, &stubAssistant{}, nil)
	// Reach into the mux with a handler that panics.
	srv.mux.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubAssistant{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/query", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
