package draft

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nyayalabs/nyaya/internal/doctype"
)

// ErrNotFound is returned when the requested draft does not exist or
// was already downloaded.
var ErrNotFound = errors.New("draft not found")

// Draft is one exported document awaiting download. Its lifetime ends
// when the caller removes it, normally right after a successful
// download.
type Draft struct {
	ID        uuid.UUID
	Type      doctype.Type
	Filename  string
	Path      string
	CreatedAt time.Time
}

// Store keeps generated drafts on the local filesystem, keyed by ID.
// IDs are random, so handing one out is the download capability.
//
// Store is safe for concurrent use.
type Store struct {
	dir    string
	logger *slog.Logger

	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
}

// NewStore creates a Store rooted at dir. An empty dir selects a fresh
// temporary directory.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		tmp, err := os.MkdirTemp("", "nyaya-drafts-")
		if err != nil {
			return nil, fmt.Errorf("creating draft directory: %w", err)
		}
		dir = tmp
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating draft directory: %w", err)
	}

	return &Store{
		dir:    dir,
		logger: logger,
		drafts: make(map[uuid.UUID]*Draft),
	}, nil
}

// Save renders text as a .docx named after the document type and
// registers it for download.
func (s *Store) Save(t doctype.Type, text string) (*Draft, error) {
	id := uuid.New()
	path := filepath.Join(s.dir, id.String()+".docx")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("creating draft file: %w", err)
	}
	if err := WriteDocx(f, text); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing draft: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("closing draft file: %w", err)
	}

	d := &Draft{
		ID:        id,
		Type:      t,
		Filename:  t.ExportFilename(),
		Path:      path,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.drafts[id] = d
	s.mu.Unlock()

	s.logger.Debug("saved draft", "id", id, "filename", d.Filename)
	return d, nil
}

// Get returns the draft with the given ID, or ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// Remove deletes the draft and its file. File removal is best-effort;
// a draft whose file lingers is still unreachable once deregistered.
func (s *Store) Remove(id uuid.UUID) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	delete(s.drafts, id)
	s.mu.Unlock()

	if !ok {
		return
	}
	if err := os.Remove(d.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("removing draft file", "id", id, "error", err)
	}
}
