package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the prediction service is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newPredictorClient()
		if err != nil {
			return err
		}
		msg, err := client.Health(context.Background())
		if err != nil {
			return fmt.Errorf("%s: %w", viper.GetString("api.url"), err)
		}
		if msg == "" {
			msg = "OK"
		}
		fmt.Printf("%s: %s\n", client.BaseURL(), msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
