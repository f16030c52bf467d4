package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgagnon/acbtracker/portfolio"
)

// FileStore keeps the whole document as one JSON file. A missing file is an
// empty document, and saves go through a temp file + rename so a crashed
// write never leaves a torn document behind.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() ([]*portfolio.Portfolio, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*portfolio.Portfolio{}, nil
		}
		return nil, fmt.Errorf("load portfolio document: %w", err)
	}
	var portfolios []*portfolio.Portfolio
	if err := json.Unmarshal(data, &portfolios); err != nil {
		return nil, fmt.Errorf("parse portfolio document %s: %w", s.Path, err)
	}
	for _, p := range portfolios {
		if p.Holdings == nil {
			p.Holdings = make(map[string][]*portfolio.TransactionEvent)
		}
	}
	return portfolios, nil
}

func (s *FileStore) Save(portfolios []*portfolio.Portfolio) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}
	data, err := json.MarshalIndent(portfolios, "", "  ")
	if err != nil {
		return fmt.Errorf("encode portfolio document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".portfolios-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write portfolio document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace portfolio document: %w", err)
	}
	return nil
}
