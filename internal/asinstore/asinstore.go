// Package asinstore manages named saved ASIN lists in a JSON file.
package asinstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// DefaultListName is the list used when the caller does not name one.
const DefaultListName = "default"

// ListData holds the members of one saved list.
type ListData struct {
	ASINs       []string `json:"asins"`
	Description string   `json:"description,omitempty"`
}

// fileFormat is the on-disk layout. An older layout with a single top-level
// "asins" array is still readable and migrated to the default list on load.
type fileFormat struct {
	Lists map[string]ListData `json:"lists"`
	ASINs []string            `json:"asins,omitempty"` // legacy single-list layout
}

// Store reads and writes saved ASIN lists.
type Store struct {
	path string
}

var _ contract.ASINResolver = &Store{} // Compile-time check

// New creates a store backed by the given file path.
func New(path string) *Store {
	if path == "" {
		path = contract.GetASINFilePath()
	}
	return &Store{path: path}
}

// load reads all lists, returning an empty map when the file does not exist.
func (s *Store) load() (map[string]ListData, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ListData{}, nil
		}
		return nil, fmt.Errorf("failed to read ASIN file %s: %w", s.path, err)
	}

	var file fileFormat
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse ASIN file %s: %w", s.path, err)
	}
	if file.Lists == nil {
		file.Lists = map[string]ListData{}
	}
	if len(file.ASINs) > 0 {
		file.Lists[DefaultListName] = ListData{
			ASINs:       file.ASINs,
			Description: "Migrated from old format",
		}
	}
	return file.Lists, nil
}

// save writes all lists back to disk.
func (s *Store) save(lists map[string]ListData) error {
	data, err := json.MarshalIndent(fileFormat{Lists: lists}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ASIN lists: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ASIN file %s: %w", s.path, err)
	}
	return nil
}

// ResolveList returns the members of a named list.
func (s *Store) ResolveList(name string) ([]string, error) {
	lists, err := s.load()
	if err != nil {
		return nil, err
	}
	list, ok := lists[name]
	if !ok {
		return nil, fmt.Errorf("no saved list named %q", name)
	}
	if len(list.ASINs) == 0 {
		return nil, fmt.Errorf("saved list %q is empty", name)
	}
	return list.ASINs, nil
}

// Lists returns all saved lists keyed by name.
func (s *Store) Lists() (map[string]ListData, error) {
	return s.load()
}

// ListNames returns the saved list names in sorted order.
func (s *Store) ListNames() ([]string, error) {
	lists, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Add validates and appends ASINs to a named list, creating it when missing.
// Duplicates already in the list are skipped. Returns the number added.
func (s *Store) Add(name string, asins []string) (int, error) {
	lists, err := s.load()
	if err != nil {
		return 0, err
	}

	list := lists[name]
	existing := make(map[string]struct{}, len(list.ASINs))
	for _, a := range list.ASINs {
		existing[a] = struct{}{}
	}

	added := 0
	for _, a := range asins {
		normalized := schema.NormalizeASIN(a)
		if !schema.IsValidASIN(normalized) {
			return 0, fmt.Errorf("invalid ASIN %q: must be exactly 10 letters and digits", a)
		}
		if _, ok := existing[normalized]; ok {
			continue
		}
		existing[normalized] = struct{}{}
		list.ASINs = append(list.ASINs, normalized)
		added++
	}

	lists[name] = list
	return added, s.save(lists)
}

// Remove deletes ASINs from a named list. Returns the number removed.
func (s *Store) Remove(name string, asins []string) (int, error) {
	lists, err := s.load()
	if err != nil {
		return 0, err
	}
	list, ok := lists[name]
	if !ok {
		return 0, fmt.Errorf("no saved list named %q", name)
	}

	drop := make(map[string]struct{}, len(asins))
	for _, a := range asins {
		drop[schema.NormalizeASIN(a)] = struct{}{}
	}

	kept := list.ASINs[:0]
	removed := 0
	for _, a := range list.ASINs {
		if _, ok := drop[a]; ok {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	list.ASINs = kept
	lists[name] = list
	return removed, s.save(lists)
}

// Clear deletes a named list entirely.
func (s *Store) Clear(name string) error {
	lists, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := lists[name]; !ok {
		return fmt.Errorf("no saved list named %q", name)
	}
	delete(lists, name)
	return s.save(lists)
}
