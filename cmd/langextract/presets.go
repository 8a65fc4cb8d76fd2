package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/presets"
)

// presetView is one row of presets output.
type presetView struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      any    `json:"schema" yaml:"schema"`
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the schema presets offered by the web form",
	Long: `List the built-in schema presets and any loaded from the presets file
(presets_file in the config, or presets.yaml in the home directory).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := presets.Load(homeDirs.PresetsFile(configMgr.Get().PresetsFile))
		if err != nil {
			return err
		}

		var views []presetView
		for _, p := range set.List() {
			views = append(views, presetView{
				Name:        p.Name,
				Description: p.Description,
				Schema:      p.Schema.Value(),
			})
		}
		return api.OutputTo(cmd.OutOrStdout(), api.GetOutputFormat(), views)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
