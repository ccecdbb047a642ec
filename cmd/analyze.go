package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze RESUME",
	Short: "Score a résumé against a job description or a catalog role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("job-title", "t", "", "job title; without a description one is derived from it")
	analyzeCmd.Flags().String("job-description", "", "job description text")
	analyzeCmd.Flags().String("job-description-file", "", "file with the job description")
	analyzeCmd.Flags().StringP("role", "r", "", "score against a catalog role instead of a job")
	analyzeCmd.Flags().Bool("review", false, "attach an AI review (needs ai.enabled)")
	analyzeCmd.Flags().String("instructions", "", "extra notes for the AI reviewer")

	analyzeCmd.MarkFlagsMutuallyExclusive("role", "job-title")
	analyzeCmd.MarkFlagsOneRequired("role", "job-title")
}

func analyze(cmd *cobra.Command, path string) {
	ctx := context.Background()
	log, config := setup()

	flags := cmd.Flags()
	review, _ := flags.GetBool("review")

	text, err := readResume(path)
	if err != nil {
		log.Fatal("reading resume", zap.Error(err))
	}

	svc, err := newService(ctx, config, log, review)
	if err != nil {
		log.Fatal("building analyzer", zap.Error(err))
	}

	if role, _ := flags.GetString("role"); role != "" {
		res, err := svc.AnalyzeRole(text, role)
		if err != nil {
			log.Fatal("analyzing resume", zap.Error(err), zap.Strings("roles", svc.Catalog().Slugs()))
		}
		if err := printJSON(res); err != nil {
			log.Fatal("printing result", zap.Error(err))
		}
		return
	}

	title, _ := flags.GetString("job-title")
	inline, _ := flags.GetString("job-description")
	file, _ := flags.GetString("job-description-file")

	description, err := jobDescription(inline, file)
	if err != nil {
		log.Fatal("reading job description", zap.Error(err))
	}

	res := svc.Analyze(text, description, title)

	if review {
		instructions, _ := flags.GetString("instructions")
		if instructions == "" && config.AI != nil {
			instructions = config.AI.Instructions
		}
		if err := svc.Review(ctx, &res, instructions); err != nil {
			fields := []zap.Field{zap.Error(err), zap.String(logger.FieldJobTitle, title)}
			if errors.Is(err, ai.ErrDisabled) {
				fields = append(fields, zap.String("hint", "set ai.enabled and a gemini api key"))
			}
			log.Warn("skipping ai review", fields...)
		}
	}

	if err := printJSON(res); err != nil {
		log.Fatal("printing result", zap.Error(err))
	}
}
