package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MediMind web interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")

		app, db, err := openSession(context.Background(), true)
		if err != nil {
			return err
		}
		defer db.Close()

		return server.New(app).Start(listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "127.0.0.1:8080", "HTTP listen address")
}
