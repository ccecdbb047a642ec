package postings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Who put a posting on the exclude list.
const (
	ExcludeActorUser = "user"
	ExcludeActorAI   = "ai"
)

type Excluded struct {
	Items []*ExcludedPosting `json:"items"`
}

type ExcludedPosting struct {
	ID         string    `json:"id"`
	URL        string    `json:"url,omitempty"`
	Company    string    `json:"company,omitempty"`
	Title      string    `json:"title,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// ToExcluded converts every posting into an exclude entry stamped with now.
func (p *Postings) ToExcluded(actor, reason string, now time.Time) *Excluded {
	excluded := &Excluded{}
	for _, posting := range p.Items {
		excluded.Items = append(excluded.Items, &ExcludedPosting{
			ID:         posting.ID,
			URL:        posting.URL,
			Company:    posting.Company,
			Title:      posting.Title,
			Actor:      actor,
			Reason:     reason,
			ExcludedAt: now.UTC(),
		})
	}
	return excluded
}

// LoadExcluded reads an exclude file. A missing or empty file is an empty list.
func LoadExcluded(path string) (*Excluded, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Excluded{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Excluded{}, nil
	}

	var excluded Excluded
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode exclude file %s: %w", path, err)
	}
	return &excluded, nil
}

// Append adds the entries of s whose ids are not listed yet.
func (e *Excluded) Append(s *Excluded) {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.ID] = struct{}{}
	}
	for _, item := range s.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *Excluded) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (e *Excluded) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// AppendToFile merges entries into the exclude file at path.
func AppendToFile(path string, entries *Excluded) error {
	excluded, err := LoadExcluded(path)
	if err != nil {
		return fmt.Errorf("load excluded postings: %w", err)
	}
	excluded.Append(entries)
	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("write excluded postings: %w", err)
	}
	return nil
}
