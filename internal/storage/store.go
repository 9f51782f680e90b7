// Package storage persists the article store: one JSON file holding a
// top-level array of article records, written back as a whole. Backups are
// timestamped sibling files with the same schema, kept only for manual
// rollback.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jamsa/articlegen/internal/article"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the whole article array. A missing or malformed file is an
// input error; nothing is ever partially processed.
func (s *Store) Load() ([]article.Article, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read article store: %w", err)
	}

	var articles []article.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode article store %s: %w", s.path, err)
	}
	return articles, nil
}

// Save overwrites the store with the full array, pretty-printed with
// 2-space indent.
func (s *Store) Save(articles []article.Article) error {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal articles: %w", err)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write article store: %w", err)
	}
	return nil
}

// Backup snapshots the given array to a timestamped sibling file, e.g.
// articles_pre_deduplication_20250101_120000.json, and returns its path.
func (s *Store) Backup(suffix string, articles []article.Article) (string, error) {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	name := fmt.Sprintf("%s_%s_%s.json", base, suffix, time.Now().Format("20060102_150405"))
	backupPath := filepath.Join(filepath.Dir(s.path), name)

	if err := os.WriteFile(backupPath, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return backupPath, nil
}
