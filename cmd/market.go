package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/market"
)

var marketCmd = &cobra.Command{
	Use:   "market [TITLE]",
	Short: "Show job-market data for a title or trending skills for an industry",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		marketInfo(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)

	marketCmd.Flags().StringP("level", "l", "", "experience level for salary insights: "+strings.Join(market.Levels(), ", "))
	marketCmd.Flags().StringP("industry", "i", "", "list trending skills of an industry: "+strings.Join(market.Industries(), ", "))
}

func marketInfo(cmd *cobra.Command, args []string) {
	log, config := setup()

	if industry, _ := cmd.Flags().GetString("industry"); industry != "" {
		if err := printJSON(market.TrendingSkillsByIndustry(industry)); err != nil {
			log.Fatal("printing skills", zap.Error(err))
		}
		return
	}

	if len(args) == 0 {
		log.Fatal("a job title or --industry is required")
	}

	svc, err := newService(context.Background(), config, log, false)
	if err != nil {
		log.Fatal("building analyzer", zap.Error(err))
	}

	var out any = svc.Market().Get(args[0])
	if level, _ := cmd.Flags().GetString("level"); level != "" {
		out = svc.Market().SalaryInsights(args[0], level)
	}

	if err := printJSON(out); err != nil {
		log.Fatal("printing market data", zap.Error(err))
	}
}
