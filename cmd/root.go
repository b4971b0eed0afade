package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/app"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/server"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "estate-backoffice",
	Short:         "Real-estate back-office API over a headless content store",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		defer func() { _ = logger.Sync() }()
		app.Invoke(server.StartServer).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
