package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address (default "+server.DefaultAddress+")")
	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, config := setup()
	log.Info("starting the resume-matcher", zap.String("version", version))

	svc, err := newService(ctx, config, log, true)
	if err != nil {
		log.Fatal("building analyzer", zap.Error(err))
	}

	srv := server.New(config.Server, svc, log.Named("http"))
	if err := srv.Listen(ctx); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
