package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare FIRST SECOND",
	Short: "Compare two résumés against the same job",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		compare(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringP("job-title", "t", "", "job title")
	compareCmd.Flags().String("job-description", "", "job description text")
	compareCmd.Flags().String("job-description-file", "", "file with the job description")
	_ = compareCmd.MarkFlagRequired("job-title")
}

func compare(cmd *cobra.Command, firstPath, secondPath string) {
	log, config := setup()

	first, err := readResume(firstPath)
	if err != nil {
		log.Fatal("reading resume", zap.Error(err))
	}
	second, err := readResume(secondPath)
	if err != nil {
		log.Fatal("reading resume", zap.Error(err))
	}

	title, _ := cmd.Flags().GetString("job-title")
	inline, _ := cmd.Flags().GetString("job-description")
	file, _ := cmd.Flags().GetString("job-description-file")

	description, err := jobDescription(inline, file)
	if err != nil {
		log.Fatal("reading job description", zap.Error(err))
	}

	svc, err := newService(context.Background(), config, log, false)
	if err != nil {
		log.Fatal("building analyzer", zap.Error(err))
	}

	result := svc.Compare(first, second, description, title)
	log.Info("comparison finished",
		zap.Int("winner", result.Winner),
		zap.String("decided_by", result.DecidedBy),
		zap.Int("margin", result.Margin),
	)

	if err := printJSON(result); err != nil {
		log.Fatal("printing result", zap.Error(err))
	}
}
