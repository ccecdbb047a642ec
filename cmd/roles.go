package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the role catalog, including config overrides",
	Run: func(_ *cobra.Command, _ []string) {
		listRoles()
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func listRoles() {
	log, config := setup()

	svc, err := newService(context.Background(), config, log, false)
	if err != nil {
		log.Fatal("building analyzer", zap.Error(err))
	}

	catalog := svc.Catalog()
	out := make(map[string]any, len(catalog.Slugs()))
	for _, slug := range catalog.Slugs() {
		role, err := catalog.Get(slug)
		if err != nil {
			log.Fatal("reading catalog", zap.Error(err))
		}
		out[slug] = role
	}

	if err := printJSON(out); err != nil {
		log.Fatal("printing roles", zap.Error(err))
	}
}
