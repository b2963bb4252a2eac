package main

import (
	"fmt"

	"github.com/atriumhq/atrium/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Browse the alumni directory",
}

var directoryLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all profiles, sorted by name",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		env := client.Directory.List(cmd.Context())
		if !env.Success {
			fail(env.Reason())
		}
		for _, profile := range env.Data {
			fmt.Println(tui.ProfileLine(profile))
		}
	},
}

var directoryShowCmd = &cobra.Command{
	Use:   "show <profile-id>",
	Short: "Show one profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		env := client.Directory.GetByID(cmd.Context(), args[0])
		if !env.Success {
			fail(env.Reason())
		}
		p := env.Data
		fmt.Printf("%s (class of %d)\n", p.Name, p.ClassYear)
		fmt.Printf("%s at %s, %s\n", p.Role, p.Company, p.Location)
		if p.Mentoring {
			fmt.Println("Open to mentoring.")
		}
	},
}

var directorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search profiles by name, company or role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		env := client.Directory.Search(cmd.Context(), args[0])
		if !env.Success {
			fail(env.Reason())
		}
		if len(env.Data) == 0 {
			fmt.Println("No profiles matched.")
			return
		}
		for _, profile := range env.Data {
			fmt.Println(tui.ProfileLine(profile))
		}
	},
}

var directorySuggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Show name completions for a prefix",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		env := client.Directory.Suggest(cmd.Context(), args[0])
		if !env.Success {
			fail(env.Reason())
		}
		for _, name := range env.Data {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(directoryCmd)
	directoryCmd.AddCommand(directoryLsCmd)
	directoryCmd.AddCommand(directoryShowCmd)
	directoryCmd.AddCommand(directorySearchCmd)
	directoryCmd.AddCommand(directorySuggestCmd)
}
