package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Cache remembers which Notion page each article landed on, so that link
// resolution and repeated runs avoid redundant lookups. It persists as a
// single JSON file between runs.
type Cache struct {
	pages  map[string]string // article ID → page ID
	urls   map[string]string // raw URL variant → page ID
	titles map[string]string // page ID → article title
}

// cacheFile is the persisted layout. The field names are part of the
// file format.
type cacheFile struct {
	PageCache  map[string]string `json:"page_cache"`
	URLMap     map[string]string `json:"url_map"`
	IDTitleMap map[string]string `json:"id_title_map"`
}

func NewCache() *Cache {
	return &Cache{
		pages:  make(map[string]string),
		urls:   make(map[string]string),
		titles: make(map[string]string),
	}
}

func (c *Cache) RecordPage(articleID, pageID string) {
	c.pages[articleID] = pageID
}

func (c *Cache) LookupPage(articleID string) (string, bool) {
	pageID, ok := c.pages[articleID]
	return pageID, ok
}

func (c *Cache) RecordURL(url, pageID string) {
	c.urls[url] = pageID
}

func (c *Cache) LookupURL(url string) (string, bool) {
	pageID, ok := c.urls[url]
	return pageID, ok
}

func (c *Cache) RecordTitle(pageID, title string) {
	c.titles[pageID] = title
}

// PageByTitle returns the page whose recorded title matches exactly.
func (c *Cache) PageByTitle(title string) (string, bool) {
	for pageID, t := range c.titles {
		if t == title {
			return pageID, true
		}
	}
	return "", false
}

// Titles returns the page ID → title map for fuzzy matching.
func (c *Cache) Titles() map[string]string {
	return c.titles
}

// PageIDs returns all cached page IDs, deduplicated and sorted for
// deterministic iteration.
func (c *Cache) PageIDs() []string {
	seen := make(map[string]bool, len(c.pages))
	ids := make([]string, 0, len(c.pages))
	for _, pageID := range c.pages {
		if !seen[pageID] {
			seen[pageID] = true
			ids = append(ids, pageID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Stats returns the number of cached pages and URL variants.
func (c *Cache) Stats() (pages int, urls int) {
	return len(c.pages), len(c.urls)
}

func (c *Cache) SaveToFile(path string) error {
	raw, err := json.MarshalIndent(cacheFile{
		PageCache:  c.pages,
		URLMap:     c.urls,
		IDTitleMap: c.titles,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// LoadCacheFromFile reads a persisted cache. A missing file yields an
// empty cache: the first run starts from nothing.
func LoadCacheFromFile(path string) (*Cache, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewCache(), nil
	}
	if err != nil {
		return nil, err
	}
	var file cacheFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cache := NewCache()
	for k, v := range file.PageCache {
		cache.pages[k] = v
	}
	for k, v := range file.URLMap {
		cache.urls[k] = v
	}
	for k, v := range file.IDTitleMap {
		cache.titles[k] = v
	}
	return cache, nil
}
