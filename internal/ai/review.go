// Package ai defines the optional narrative review of an analysis. Reviews
// never change the deterministic scores; they are attached alongside them.
package ai

import (
	"context"
	"errors"
)

// ErrDisabled is returned when a review is requested but no reviewer is configured.
var ErrDisabled = errors.New("ai review is disabled")

// ReviewRequest carries what a reviewer sees of one résumé/job pair.
type ReviewRequest struct {
	ResumeText     string
	JobTitle       string
	JobDescription string
	OverallScore   int
	MatchedSkills  []string
	MissingSkills  []string
	// Instructions are advisory user notes appended to the prompt.
	Instructions string
}

// Review is a reviewer's verdict on a résumé/job pair.
type Review struct {
	Fit          bool     `json:"fit"`
	Score        float64  `json:"score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Provider     string   `json:"provider,omitempty"`
	Model        string   `json:"model,omitempty"`
	Raw          string   `json:"-"`
}

type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (*Review, error)
}
