package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/config"
	"github.com/jackzampolin/langextract/internal/home"
	"github.com/jackzampolin/langextract/version"
)

// skipConfig marks commands that run without loading the config.
const skipConfig = "skip-config"

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	apiURL       string

	// Set by loadConfig before any command that needs them runs.
	homeDirs  *home.Dir
	configMgr *config.Manager
)

// flagKeys maps command-line flags onto the config keys they override.
var flagKeys = map[string]string{
	"api-url": "api_url",
	"host":    "server.host",
	"port":    "server.port",
}

var rootCmd = &cobra.Command{
	Use:   "langextract",
	Short: "Web client for a structured information extraction service",
	Long: `LangExtract sends free text and a JSON schema to an extraction backend
and shows the structured result.

Run "langextract serve" for the web form, or call the backend directly:
  langextract extract --text "Jane is 30 years old."
  langextract upload report.pdf
  langextract providers

The backend URL comes from --api-url, LANGEXTRACT_API_URL or api_url in
the config file (default: ` + config.DefaultAPIURL + `).`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.langextract/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "langextract home directory (default: ~/.langextract)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&apiURL, "api-url", config.DefaultAPIURL, "extraction backend base URL",
	)

	// Set output format and load config before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		api.SetOutputFormat(outputFormat)
		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}
		return loadConfig(cmd)
	}

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the home directory and builds the config manager,
// binding whichever of flagKeys the running command defines.
func loadConfig(cmd *cobra.Command) error {
	h, err := home.New(homeDir)
	if err != nil {
		return err
	}

	file := cfgFile
	if file == "" && h.ConfigExists() {
		file = h.ConfigPath()
	}

	var bindings []config.FlagBinding
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			bindings = append(bindings, config.FlagBinding{Key: key, Flag: f})
		}
	}

	mgr, err := config.NewManager(file, bindings...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	homeDirs = h
	configMgr = mgr
	return nil
}

// getClient returns a backend client for the loaded config.
// It is called at runtime, after flags and config are loaded.
func getClient() *api.Client {
	cfg := configMgr.Get()
	return api.New(api.ClientConfig{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
	})
}
