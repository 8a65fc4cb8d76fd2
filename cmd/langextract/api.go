package main

import (
	"github.com/jackzampolin/langextract/internal/server/endpoints"
)

func init() {
	// extract, upload, providers, ready and swagger call the backend
	// directly; browser-only endpoints have no command.
	for _, cmd := range endpoints.NewRegistry().Commands(getClient) {
		rootCmd.AddCommand(cmd)
	}
}
