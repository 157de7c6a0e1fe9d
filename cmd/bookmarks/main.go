package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "bookmarks",
		Short:   "A bookmark manager HTTP API",
		Long:    "Bookmarks stores links with a title, description and rating behind a token-protected JSON API.",
		Version: build.String(),
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
