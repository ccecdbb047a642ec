package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/feed"
	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/postings"
	"github.com/spigell/resume-matcher/internal/secrets"
)

const (
	PromptYes                 = "Yes"
	PromptNo                  = "No"
	PromptBack                = "back"
	PromptReportByCompanies   = "Report by companies"
	PromptInspect             = "Inspect postings one by one"
	PromptPostingsToFile      = "Dump postings to file"
	PromptAppendToExcludeFile = "Append all postings to exclude file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank RESUME",
	Short: "Rank job postings from a file or a feed against a résumé",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("postings", "p", "", "JSON file with postings (array or {\"items\": [...]})")
	rankCmd.Flags().String("feed-url", "", "paginated JSON feed to download postings from")
	rankCmd.Flags().StringP("query", "q", "", "search text passed to the feed")
	rankCmd.Flags().IntP("min-score", "m", 0, "drop postings scoring below this overall score")
	rankCmd.Flags().StringP("exclude-file", "e", "", "file with postings to exclude. Default is unset.")
	rankCmd.Flags().BoolP("yes", "y", false, "print the ranked postings as JSON without asking")

	viper.BindPFlag("rank.exclude_file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("rank.minimum_score", rankCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("feed.url", rankCmd.Flags().Lookup("feed-url"))
	viper.BindPFlag("feed.query", rankCmd.Flags().Lookup("query"))
}

func rank(cmd *cobra.Command, resumePath string) {
	ctx := context.Background()
	log, config := setup()

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	resume, err := readResume(resumePath)
	if err != nil {
		log.Fatal("reading resume", zap.Error(err))
	}

	list, err := loadPostings(ctx, cmd, config, log)
	if err != nil {
		log.Fatal("getting postings", zap.Error(err))
	}

	if list.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no postings found"))
		return
	}

	svc, err := newService(ctx, config, log, false)
	if err != nil {
		log.Fatal("building analyzer", zap.Error(err))
	}

	filters := prepareFilters(ctx, config, svc, resume, log)
	log.Debug("filters", zap.Any("steps", filters.Describe()))

	list, err = filters.RunFilters(ctx, list)
	if err != nil {
		log.Fatal("filtering failed", zap.Error(err))
	}

	if list.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		if err := printJSON(list); err != nil {
			log.Fatal("printing postings", zap.Error(err))
		}
		return
	}

	excludeFile := config.Rank.ExcludeFile
	for {
		log.Info("current list of postings", zap.Int("count", list.Len()))

		items := []string{PromptReportByCompanies, PromptInspect, PromptPostingsToFile}
		if excludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}
		prompt := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, log, excludeFile, list); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}

		if list.Len() == 0 {
			log.Info("exiting", zap.String("reason", "no postings left"))
			return
		}
	}
}

func handleAction(action string, log *zap.Logger, excludeFile string, list *postings.Postings) error {
	switch action {
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(list.ReportByCompany(), "", "  ")
		log.Info(string(pretty), zap.Int("postings count", list.Len()))
		return nil
	case PromptInspect:
		return inspect(log, excludeFile, list)
	case PromptPostingsToFile:
		filename, err := list.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		if err := excludePostings(excludeFile, list, "appended from rank"); err != nil {
			return err
		}
		log.Info("postings appended to exclude file",
			zap.String("file", excludeFile),
			zap.Int("count", list.Len()),
		)
		list.Items = nil
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// inspect walks postings one at a time, printing the match and offering to
// exclude the posting.
func inspect(log *zap.Logger, excludeFile string, list *postings.Postings) error {
	for list.Len() > 0 {
		labels := make([]string, 0, list.Len()+1)
		for _, p := range list.Items {
			labels = append(labels, fmt.Sprintf("%s [%d] %s / %s / %s", p.ID, p.Score(), p.Title, p.Company, p.URL))
		}

		postingPrompt := promptui.Select{
			Label: "Choose a posting and press ENTER",
			Items: append(labels, PromptBack),
		}

		idx, choice, err := postingPrompt.Run()
		if err != nil {
			return err
		}
		if choice == PromptBack {
			return nil
		}

		posting := list.Items[idx]
		pretty, _ := json.MarshalIndent(posting, "", "  ")
		fmt.Println(string(pretty))

		if excludeFile == "" {
			continue
		}

		confirm := promptui.Select{
			Label: fmt.Sprintf("Exclude posting %s from future runs?", posting.ID),
			Items: []string{PromptNo, PromptYes},
		}
		_, answer, err := confirm.Run()
		if err != nil {
			return err
		}
		if answer != PromptYes {
			continue
		}

		single := &postings.Postings{Items: []*postings.Posting{posting}}
		if err := excludePostings(excludeFile, single, "excluded manually"); err != nil {
			return err
		}
		list.Exclude(postings.PostingIDField, []string{posting.ID})
		log.Info("posting excluded", zap.String(logger.FieldPostingID, posting.ID))
	}
	return nil
}

func excludePostings(path string, list *postings.Postings, reason string) error {
	entries := list.ToExcluded(postings.ExcludeActorUser, reason, time.Now())
	if err := postings.AppendToFile(path, entries); err != nil {
		return fmt.Errorf("append to exclude file: %w", err)
	}
	return nil
}

// loadPostings reads postings from the --postings file or, failing that,
// from the configured feed.
func loadPostings(ctx context.Context, cmd *cobra.Command, config *Config, log *zap.Logger) (*postings.Postings, error) {
	if path, _ := cmd.Flags().GetString("postings"); strings.TrimSpace(path) != "" {
		list, err := postings.Load(path)
		if err != nil {
			return nil, err
		}
		log.Info("getting postings", zap.String("source", path), zap.Int("count", list.Len()))
		return list, nil
	}

	if config.Feed.URL == "" {
		return nil, errors.New("either --postings or feed.url is required")
	}

	token := ""
	if config.Feed.TokenFile != "" {
		var err error
		token, err = secrets.Load(secrets.Source{Name: "feed token", File: config.Feed.TokenFile})
		if err != nil {
			return nil, err
		}
	}

	client, err := feed.New(config.Feed.URL, token, log.Named("feed"))
	if err != nil {
		return nil, err
	}
	client.SetPerPage(config.Feed.PerPage)
	if config.Feed.Timeout > 0 {
		client.HTTPClient.Timeout = config.Feed.Timeout
	}
	if config.Feed.UserAgent != "" {
		client.UserAgent = config.Feed.UserAgent
	}

	log.Info("starting the search", zap.String("query", config.Feed.Query))
	list, err := client.Fetch(ctx, config.Feed.Query)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	log.Info("getting postings", zap.String("source", config.Feed.URL), zap.Int("count", list.Len()))
	return list, nil
}

func prepareFilters(ctx context.Context, config *Config, svc *analyzer.Service, resume string, log *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewExcludeFile(config.Rank.ExcludeFile),
		filtering.NewExcludedCompanies(config.Rank.ExcludeCompanies),
		filtering.NewScore(&filtering.ScoreDeps{
			Analyzer:   svc,
			ResumeText: resume,
			Logger:     log,
		}),
		filtering.NewMinScore(config.Rank.MinimumScore),
	}

	aiFilter, err := prepareAIFilter(ctx, config, resume, log)
	if err != nil {
		log.Warn("skipping AI filter", zap.Error(err))
	} else if aiFilter.IsEnabled() {
		steps = append(steps, aiFilter)
	}

	return filtering.New(steps, log)
}

func prepareAIFilter(ctx context.Context, config *Config, resume string, log *zap.Logger) (filtering.Filter, error) {
	ac := config.AI
	if ac == nil || !ac.Enabled {
		return filtering.NewAIReview(&filtering.AIReviewConfig{Enabled: false}, nil), nil
	}

	reviewer, err := newReviewer(ctx, ac, log)
	if err != nil {
		return nil, fmt.Errorf("building ai reviewer: %w", err)
	}

	model := ""
	if ac.Gemini != nil {
		model = ac.Gemini.Model
	}

	return filtering.NewAIReview(&filtering.AIReviewConfig{
		Enabled:         true,
		Provider:        ac.Provider,
		Model:           model,
		MinimumFitScore: ac.MinimumFitScore,
		Instructions:    ac.Instructions,
	}, &filtering.AIReviewDeps{
		Logger:      log,
		Reviewer:    reviewer,
		ResumeText:  resume,
		ExcludeFile: config.Rank.ExcludeFile,
	}), nil
}
