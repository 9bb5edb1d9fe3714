package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// DefaultFile is the state file name, resolved against the working directory.
const DefaultFile = "neurocp_data.json"

// ErrCorrupt is returned alongside an empty document when the state file is
// not valid JSON.
var ErrCorrupt = errors.New("data file is corrupted or not valid JSON")

// Store reads and writes the document at a single path.
type Store struct {
	path   string
	logger *zap.Logger
}

// New returns a Store backed by path. A nil logger discards log output.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger.Named("store")}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. The returned document is never nil.
//
// A missing or empty file yields the empty document and no error. Any other
// failure also yields the empty document, together with an error the caller
// should surface as a warning: ErrCorrupt for invalid JSON, or the wrapped
// read error.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no data file, using empty document", zap.String("path", s.path))
			return NewDocument(), nil
		}
		s.logger.Warn("reading data file failed", zap.String("path", s.path), zap.Error(err))
		return NewDocument(), fmt.Errorf("reading %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return NewDocument(), nil
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn("data file is not valid JSON", zap.String("path", s.path), zap.Error(err))
		return NewDocument(), fmt.Errorf("%s: %w", s.path, ErrCorrupt)
	}

	s.logger.Debug("loaded data file",
		zap.String("path", s.path),
		zap.Int("agents", doc.Len()),
		zap.String("active_agent", doc.ActiveName()))
	return doc, nil
}

// Save overwrites the backing file with doc as indented JSON.
func (s *Store) Save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Error("writing data file failed", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	s.logger.Debug("saved data file", zap.String("path", s.path), zap.Int("agents", doc.Len()))
	return nil
}
