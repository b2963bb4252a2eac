package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/atriumhq/atrium/internal/presentation/tui"
	"github.com/atriumhq/atrium/pkg/suggest"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Interactive directory search with live suggestions",
	Long: `Reads the search box content line by line. Each line replaces the
query; suggestions appear after a short quiet period and the settled query
is committed to the session.

Commands: :enter commits immediately, :pick <n> selects a suggestion,
:esc closes the dropdown, :quit exits.`,
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		quiet, _ := cmd.Flags().GetDuration("quiet")

		var mu sync.Mutex
		var dropdown []string

		fetcher := client.NewSearchFetcher(func(query string) {
			if query == "" {
				return
			}
			env := client.Directory.Search(cmd.Context(), query)
			if !env.Success {
				fmt.Fprintln(os.Stderr, tui.Failure(env.Reason()))
				return
			}
			fmt.Printf("= %d result(s) for %q\n", len(env.Data), query)
			for _, profile := range env.Data {
				fmt.Println(tui.ProfileLine(profile))
			}
		},
			suggest.WithQuietPeriod(quiet),
			suggest.OnSuggestions(func(names []string) {
				mu.Lock()
				dropdown = names
				mu.Unlock()
				for i, name := range names {
					fmt.Printf("  %d) %s\n", i+1, name)
				}
			}),
		)

		fmt.Println("Type to search the directory (:quit to exit).")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == ":quit":
				return
			case line == ":enter":
				fetcher.Commit()
			case line == ":esc":
				fetcher.Dismiss()
			case strings.HasPrefix(line, ":pick "):
				n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":pick ")))
				mu.Lock()
				names := dropdown
				mu.Unlock()
				if err != nil || n < 1 || n > len(names) {
					fmt.Fprintln(os.Stderr, "No such suggestion.")
					continue
				}
				fetcher.Select(names[n-1])
			default:
				fetcher.Input(cmd.Context(), line)
			}
		}
		// Let a trailing quiet period settle before exiting on EOF.
		time.Sleep(quiet)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Duration("quiet", suggest.DefaultQuietPeriod, "Debounce quiet period")
}
