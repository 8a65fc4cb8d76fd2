package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/config"
	"github.com/jackzampolin/langextract/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with the default settings",
	Long:        `Write a config file with the default settings to --config, or to config.yaml in the home directory.`,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			path = h.ConfigPath()
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

// configView is what config show prints.
type configView struct {
	File    string         `json:"file,omitempty" yaml:"file,omitempty"`
	Entries []config.Entry `json:"entries" yaml:"entries"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every setting with its effective and default value",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := configMgr.Entries()
		for i := range entries {
			entries[i].Value = displayValue(entries[i].Value)
			entries[i].Default = displayValue(entries[i].Default)
		}
		return api.OutputTo(cmd.OutOrStdout(), api.GetOutputFormat(), configView{
			File:    configMgr.ConfigFile(),
			Entries: entries,
		})
	},
}

// displayValue renders durations the way they are written in the file.
func displayValue(v any) any {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return v
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
