// Package cache tracks which trending keywords already produced an article
// so a keyword that trends for several days is not drafted twice. Backed by
// a small JSON file next to the article store.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// UsedKeyword records one keyword that was already turned into an article.
type UsedKeyword struct {
	Hash    string    `json:"hash"`
	Keyword string    `json:"keyword"`
	Title   string    `json:"title"`
	UsedAt  time.Time `json:"used_at"`
}

// KeywordCache manages used keywords in a JSON file.
type KeywordCache struct {
	filePath string
	ttlHours int
	items    map[string]UsedKeyword
	mu       sync.RWMutex
}

func NewKeywordCache(filePath string, ttlHours int) *KeywordCache {
	return &KeywordCache{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]UsedKeyword),
	}
}

// Load reads the existing cache, dropping entries past their TTL. A missing
// file just means an empty cache.
func (kc *KeywordCache) Load() error {
	kc.mu.Lock()
	defer kc.mu.Unlock()

	data, err := os.ReadFile(kc.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read keyword cache: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []UsedKeyword
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal keyword cache: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(kc.ttlHours) * time.Hour)
	for _, item := range items {
		if item.UsedAt.After(cutoff) {
			kc.items[item.Hash] = item
		}
	}
	return nil
}

// Save writes the current cache back to its file.
func (kc *KeywordCache) Save() error {
	kc.mu.RLock()
	items := make([]UsedKeyword, 0, len(kc.items))
	for _, item := range kc.items {
		items = append(items, item)
	}
	kc.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keyword cache: %w", err)
	}
	if err := os.WriteFile(kc.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write keyword cache: %w", err)
	}
	return nil
}

// Seen reports whether the keyword was already used within the TTL.
func (kc *KeywordCache) Seen(keyword string) bool {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	item, exists := kc.items[keywordHash(keyword)]
	if !exists {
		return false
	}
	cutoff := time.Now().Add(-time.Duration(kc.ttlHours) * time.Hour)
	return item.UsedAt.After(cutoff)
}

// Mark records that the keyword produced an article.
func (kc *KeywordCache) Mark(keyword, title string) {
	kc.mu.Lock()
	defer kc.mu.Unlock()

	hash := keywordHash(keyword)
	kc.items[hash] = UsedKeyword{
		Hash:    hash,
		Keyword: keyword,
		Title:   title,
		UsedAt:  time.Now(),
	}
}

// Len returns the number of live entries.
func (kc *KeywordCache) Len() int {
	kc.mu.RLock()
	defer kc.mu.RUnlock()
	return len(kc.items)
}

func keywordHash(keyword string) string {
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	normalized = strings.Join(strings.Fields(normalized), " ")

	h := sha256.New()
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
