package filtering

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/postings"
)

type aiReviewFilter struct {
	enabled bool
	reason  string
	config  *AIReviewConfig
	deps    *AIReviewDeps
}

type AIReviewDeps struct {
	Logger      *zap.Logger
	Reviewer    ai.Reviewer
	ResumeText  string
	ExcludeFile string
	// Now stamps exclude entries; defaults to time.Now.
	Now func() time.Time
}

type AIReviewConfig struct {
	Enabled         bool
	Provider        string
	Model           string
	MinimumFitScore float64
	Instructions    string
}

// NewAIReview creates the step that asks the AI reviewer about every posting.
// Postings judged unfit are dropped and appended to the exclude file; review
// failures keep the posting and record the error.
func NewAIReview(cfg *AIReviewConfig, deps *AIReviewDeps) Filter {
	if cfg == nil {
		cfg = &AIReviewConfig{}
	}
	return &aiReviewFilter{
		enabled: cfg.Enabled,
		config:  cfg,
		deps:    deps,
	}
}

func (f *aiReviewFilter) Name() string { return "ai_review" }

func (f *aiReviewFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *aiReviewFilter) IsEnabled() bool { return f.enabled }

func (f *aiReviewFilter) Validate() error {
	if f.deps == nil || f.deps.Reviewer == nil {
		return errors.New("ai reviewer is required when ai review is enabled")
	}
	if f.config.MinimumFitScore < 0 || f.config.MinimumFitScore > 1 {
		return fmt.Errorf("minimum fit score must be within 0..1, got %v", f.config.MinimumFitScore)
	}
	return nil
}

func (f *aiReviewFilter) Apply(ctx context.Context, p *postings.Postings) (*postings.Postings, Step, error) {
	initial := p.Len()
	log := logger.WithAIFields(f.deps.Logger, f.config.Provider, f.config.Model)

	approved := make([]*postings.Posting, 0, initial)
	for _, posting := range p.Items {
		if err := ctx.Err(); err != nil {
			return p, Step{}, err
		}

		if posting.Match == nil {
			posting.Match = &postings.Match{}
		}

		review, err := f.deps.Reviewer.Review(ctx, ai.ReviewRequest{
			ResumeText:     f.deps.ResumeText,
			JobTitle:       posting.Title,
			JobDescription: posting.Text(),
			OverallScore:   posting.Match.OverallScore,
			MatchedSkills:  posting.Match.MatchedSkills,
			MissingSkills:  posting.Match.MissingSkills,
			Instructions:   f.config.Instructions,
		})
		if err != nil {
			log.Warn("AI review failed",
				zap.String(logger.FieldPostingID, posting.ID),
				zap.Error(err),
			)
			posting.Match.ReviewError = err.Error()
			approved = append(approved, posting)
			continue
		}

		if f.config.MinimumFitScore > 0 && !math.IsNaN(review.Score) && review.Score < f.config.MinimumFitScore {
			log.Debug("set fit to false by score threshold",
				zap.String(logger.FieldPostingID, posting.ID),
				zap.Float64("score", review.Score),
				zap.Float64("threshold", f.config.MinimumFitScore),
			)
			review.Fit = false
		}

		posting.Match.Review = review

		if !review.Fit {
			log.Info("posting rejected by AI reviewer",
				zap.String(logger.FieldPostingID, posting.ID),
				zap.Float64("ai_score", review.Score),
				zap.String("summary", review.Summary),
			)

			if err := f.appendToExcludeFile(posting, review.Summary); err != nil {
				log.Warn("failed to append posting to exclude file",
					zap.String(logger.FieldPostingID, posting.ID),
					zap.Error(err),
				)
			}
			continue
		}

		log.Info("posting approved by AI reviewer",
			zap.String(logger.FieldPostingID, posting.ID),
			zap.Float64("ai_score", review.Score),
		)
		approved = append(approved, posting)
	}

	p.Items = approved

	log.Info("AI review completed",
		zap.Int("initial_postings", initial),
		zap.Int("approved_postings", len(approved)),
	)

	return p, Step{Initial: initial, Dropped: initial - len(approved), Left: len(approved)}, nil
}

func (f *aiReviewFilter) appendToExcludeFile(posting *postings.Posting, reason string) error {
	path := strings.TrimSpace(f.deps.ExcludeFile)
	if path == "" {
		return nil
	}

	now := time.Now
	if f.deps.Now != nil {
		now = f.deps.Now
	}

	entries := (&postings.Postings{Items: []*postings.Posting{posting}}).ToExcluded(postings.ExcludeActorAI, reason, now())
	return postings.AppendToFile(path, entries)
}

func (f *aiReviewFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["minimum_fit_score"] = fmt.Sprintf("%.2f", f.config.MinimumFitScore)
		if f.config.Model != "" {
			details["model"] = f.config.Model
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
