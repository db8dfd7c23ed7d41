package evolution

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultHallSize is the number of pairs a search keeps in its hall of fame.
const DefaultHallSize = 10

// HallEntry is one scored pair remembered across generations.
type HallEntry struct {
	Pair       Pair `yaml:"pair"`
	Score      int  `yaml:"score"`
	Generation int  `yaml:"generation"`
	Individual int  `yaml:"individual"`
}

// HallOfFame keeps the highest-scoring pairs seen during a search, sorted by
// score descending. Among equal scores the earlier entry ranks first.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider inserts the entry if it ranks among the best seen so far and
// reports whether it was kept.
func (h *HallOfFame) Consider(e HallEntry) bool {
	// Insertion point after every entry with a score >= e.Score
	idx := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].Score < e.Score
	})
	if idx >= h.maxSize {
		return false
	}

	h.entries = append(h.entries, HallEntry{})
	copy(h.entries[idx+1:], h.entries[idx:])
	h.entries[idx] = e

	if len(h.entries) > h.maxSize {
		h.entries = h.entries[:h.maxSize]
	}
	return true
}

// Entries returns a copy of the hall, best first.
func (h *HallOfFame) Entries() []HallEntry {
	out := make([]HallEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Size returns the number of entries.
func (h *HallOfFame) Size() int {
	return len(h.entries)
}

// TopScore returns the best score in the hall, or 0 when it is empty.
func (h *HallOfFame) TopScore() int {
	if len(h.entries) == 0 {
		return 0
	}
	return h.entries[0].Score
}

// WriteHallOfFame writes entries to a YAML file.
func WriteHallOfFame(path string, entries []HallEntry) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing hall of fame: %w", err)
	}
	return nil
}

// LoadHallOfFame reads entries written by WriteHallOfFame.
func LoadHallOfFame(path string) ([]HallEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}
	var entries []HallEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hall of fame: %w", err)
	}
	return entries, nil
}
