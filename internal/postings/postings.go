// Package postings holds batches of job postings ranked against one résumé,
// together with the exclude file that keeps already handled postings out of
// later runs.
package postings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/scoring"
)

// Fields usable with Exclude.
const (
	PostingIDField      = "ID"
	PostingCompanyField = "Company"
)

type Postings struct {
	Items []*Posting `json:"items"`
}

type Posting struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Salary      *Salary  `json:"salary,omitempty"`
	PublishedAt string   `json:"published_at,omitempty"`

	Match *Match `json:"match,omitempty"`
}

type Salary struct {
	From     int    `json:"from,omitempty"`
	To       int    `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Match is the scoring outcome of a posting, filled in during ranking.
type Match struct {
	OverallScore  int            `json:"overall_score"`
	Scores        scoring.Scores `json:"scores"`
	MatchedSkills []string       `json:"matched_skills"`
	MissingSkills []string       `json:"missing_skills"`
	Suggestions   []string       `json:"suggestions,omitempty"`
	Review        *ai.Review     `json:"ai_review,omitempty"`
	ReviewError   string         `json:"ai_review_error,omitempty"`
}

// Load reads postings from a JSON file holding either an array of postings
// or an object with an "items" array. Postings without an id get their
// position as id.
func Load(path string) (*Postings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read postings: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Postings, error) {
	data = bytes.TrimSpace(data)
	p := &Postings{}

	switch {
	case len(data) == 0:
		return p, nil
	case data[0] == '[':
		if err := json.Unmarshal(data, &p.Items); err != nil {
			return nil, fmt.Errorf("decode postings: %w", err)
		}
	default:
		if err := json.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("decode postings: %w", err)
		}
	}

	p.Normalize()
	return p, nil
}

// Normalize drops null entries and gives postings without an ID their
// 1-based position as ID.
func (p *Postings) Normalize() {
	kept := p.Items[:0]
	for idx, item := range p.Items {
		if item == nil {
			continue
		}
		if strings.TrimSpace(item.ID) == "" {
			item.ID = strconv.Itoa(idx + 1)
		}
		kept = append(kept, item)
	}
	p.Items = kept
}

// Text is the job description used for matching: the description followed
// by the listed skills.
func (po *Posting) Text() string {
	text := strings.TrimSpace(po.Description)
	if len(po.Skills) == 0 {
		return text
	}
	skills := "Skills\n" + strings.Join(po.Skills, ", ")
	if text == "" {
		return skills
	}
	return text + "\n" + skills
}

// Score is the overall match score, or -1 for unscored postings.
func (po *Posting) Score() int {
	if po.Match == nil {
		return -1
	}
	return po.Match.OverallScore
}

func (po *Posting) GetStringField(name string) string {
	switch name {
	case PostingIDField:
		return po.ID
	case PostingCompanyField:
		return po.Company
	default:
		return ""
	}
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *Posting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

// Exclude removes every posting whose field equals one of targets, ignoring
// case, and returns the removed ids. Blank targets match nothing. Order of
// the rest is preserved.
func (p *Postings) Exclude(field string, targets []string) []string {
	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		if target = strings.ToLower(strings.TrimSpace(target)); target != "" {
			set[target] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}

	return p.Keep(func(po *Posting) bool {
		_, drop := set[strings.ToLower(po.GetStringField(field))]
		return !drop
	})
}

// Keep retains the postings for which keep returns true and returns the ids
// of the dropped ones.
func (p *Postings) Keep(keep func(*Posting) bool) []string {
	var dropped []string
	kept := p.Items[:0]
	for _, posting := range p.Items {
		if keep(posting) {
			kept = append(kept, posting)
			continue
		}
		dropped = append(dropped, posting.ID)
	}
	clear(p.Items[len(kept):])
	p.Items = kept
	return dropped
}

// SortByScore orders postings by descending score; ties keep id order.
func (p *Postings) SortByScore() {
	sort.SliceStable(p.Items, func(i, j int) bool {
		a, b := p.Items[i], p.Items[j]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		return a.ID < b.ID
	})
}

func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups a short description of every posting by company.
func (p *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, posting := range p.Items {
		key := posting.Company
		if key == "" {
			key = "unknown company"
		}

		entry := map[string]string{
			"id":    posting.ID,
			"title": posting.Title,
			"url":   posting.URL,
		}
		if posting.Location != "" {
			entry["location"] = posting.Location
		}
		if s := posting.Salary; s != nil {
			entry["salary"] = fmt.Sprintf("%d-%d %s", s.From, s.To, s.Currency)
		}

		if m := posting.Match; m != nil {
			entry["score"] = strconv.Itoa(m.OverallScore)
			if len(m.MissingSkills) > 0 {
				entry["missing_skills"] = strings.Join(m.MissingSkills, ", ")
			}
			switch {
			case m.ReviewError != "":
				entry["ai_error"] = m.ReviewError
			case m.Review != nil:
				entry["ai_fit"] = strconv.FormatBool(m.Review.Fit)
				entry["ai_score"] = fmt.Sprintf("%.2f", m.Review.Score)
				entry["ai_summary"] = m.Review.Summary
			}
		}

		report[key] = append(report[key], entry)
	}
	return report
}
