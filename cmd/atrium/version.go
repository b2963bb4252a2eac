package main

import (
	"fmt"
	"strings"

	"github.com/atriumhq/atrium"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of atrium",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("atrium version %s\n", strings.TrimSpace(atrium.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
