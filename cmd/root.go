package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/sw33tLie/medimind/internal/utils"
	"github.com/sw33tLie/medimind/pkg/predictor"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `
	 __  __          _ _ __  __ _           _
	|  \/  | ___  __| (_)  \/  (_)_ __   __| |
	| |\/| |/ _ \/ _  | | |\/| | | '_ \ / _  |
	| |  | |  __/ (_| | | |  | | | | | | (_| |
	|_|  |_|\___|\__,_|_|_|  |_|_|_| |_|\__,_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "medimind",
	Short: "Symptom-based disease prediction from your terminal.",
	Long: LOGO + `medimind lets you pick symptoms, optionally narrowed by body region, sends them to a
prediction service and shows the most likely disease with its description and precautions.

Predictions are kept in a local history and can be exported as PDF, HTML or PNG reports.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.medimind.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("api-url", "", "", "Prediction service base URL (default "+predictor.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringP("dbpath", "", "", "Local storage file (default ~/.config/medimind/medimind.sqlite)")
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().IntP("retries", "", 0, "Retries on transport errors and 5xx responses")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")

	viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("dbpath"))
	viper.BindPFlag("http.proxy", rootCmd.PersistentFlags().Lookup("proxy"))
	viper.BindPFlag("http.retries", rootCmd.PersistentFlags().Lookup("retries"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A .env in the working directory feeds the MEDIMIND_* variables.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Log.Warnf("Could not load .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".medimind")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("medimind")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values for all keys
	viper.SetDefault("api.url", predictor.DefaultBaseURL)
	viper.SetDefault("storage.path", "")
	viper.SetDefault("http.proxy", "")
	viper.SetDefault("http.retries", 0)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.medimind.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
