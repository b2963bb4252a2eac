package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atriumhq/atrium/internal/presentation/tui"
	"github.com/atriumhq/atrium/pkg/confirm"
	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/poll"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse and manage job board postings",
}

var jobsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all postings, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		env := client.Jobs.List(cmd.Context())
		if !env.Success {
			fail(env.Reason())
		}
		for _, job := range env.Data {
			fmt.Println(tui.JobLine(job))
		}
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one posting with its rendered description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		env := client.Jobs.GetByID(cmd.Context(), args[0])
		if !env.Success {
			fail(env.Reason())
		}
		job := env.Data

		fmt.Printf("%s at %s (%s)\n", job.Title, job.Company, job.Location)
		fmt.Printf("Status: %s  Posted: %s\n", tui.StatusBadge(job.Status),
			job.PostedAt.Format("2006-01-02"))

		render := tui.NewMarkdownRenderer()
		out, err := render(job.Description)
		if err != nil {
			out = job.Description
		}
		fmt.Println(out)

		applied, err := client.HasApplied(cmd.Context(), job.ID)
		if err == nil && applied {
			fmt.Println("You have applied to this posting.")
		}
	},
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search postings by title, company or location",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		env := client.Jobs.Search(cmd.Context(), args[0])
		if !env.Success {
			fail(env.Reason())
		}
		if len(env.Data) == 0 {
			fmt.Println("No postings matched.")
			return
		}
		for _, job := range env.Data {
			fmt.Println(tui.JobLine(job))
		}
	},
}

var jobsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a new posting",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := newClient(cmd)
		title, _ := cmd.Flags().GetString("title")
		company, _ := cmd.Flags().GetString("company")
		location, _ := cmd.Flags().GetString("location")
		description, _ := cmd.Flags().GetString("description")

		env := client.Jobs.Create(cmd.Context(), domain.JobPosting{
			Title:       title,
			Company:     company,
			Location:    location,
			Description: description,
			PostedBy:    cfg.ActorID,
		})
		if !env.Success {
			fail(env.Reason())
		}
		fmt.Printf("Posted %s\n", env.Data.ID)
	},
}

var jobsApplyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a posting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		jobID := args[0]
		note, _ := cmd.Flags().GetString("note")
		yes, _ := cmd.Flags().GetBool("yes")

		applied, err := client.HasApplied(cmd.Context(), jobID)
		if err == nil && applied {
			fmt.Println("You have already applied to this posting.")
			return
		}

		gate := confirm.New()
		gate.Confirm(confirm.Request{
			Title:       "Submit application?",
			Description: fmt.Sprintf("Apply to posting %s as the signed-in alumni.", jobID),
			OnConfirm: func() {
				env := client.Apply(cmd.Context(), jobID, note)
				if env.Success {
					fmt.Println("Application submitted.")
				}
			},
		})
		resolveGate(gate, yes)
	},
}

var jobsCloseCmd = &cobra.Command{
	Use:   "close <job-id>",
	Short: "Stop a posting from accepting applications",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		jobID := args[0]
		yes, _ := cmd.Flags().GetBool("yes")

		gate := confirm.New()
		gate.Confirm(confirm.Request{
			Title:       "Close posting?",
			Description: fmt.Sprintf("Posting %s will stop accepting applications.", jobID),
			ConfirmText: "Close it",
			Variant:     confirm.VariantDestructive,
			OnConfirm: func() {
				env := client.CloseJob(cmd.Context(), jobID)
				if env.Success {
					fmt.Printf("Closed %s\n", env.Data.ID)
				}
			},
		})
		resolveGate(gate, yes)
	},
}

var jobsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the job board and reprint the list on changes",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		interval, _ := cmd.Flags().GetDuration("interval")

		scheduler := poll.New(func(ctx context.Context) {
			env := client.Jobs.List(ctx)
			if !env.Success {
				fmt.Fprintln(os.Stderr, tui.Failure(env.Reason()))
				return
			}
			fmt.Printf("--- %s ---\n", time.Now().Format(time.TimeOnly))
			for _, job := range env.Data {
				fmt.Println(tui.JobLine(job))
			}
		}, interval, poll.Enabled())
		defer scheduler.Stop()

		scheduler.Trigger()
		fmt.Println("Watching job board. Press Enter to refresh now, Ctrl+D to stop.")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			scheduler.Trigger()
		}
	},
}

// resolveGate settles a pending confirmation, either automatically with
// --yes or by prompting on the terminal.
func resolveGate(gate *confirm.Gate, yes bool) {
	req, ok := gate.Pending()
	if !ok {
		return
	}
	if yes {
		gate.Accept()
		return
	}

	fmt.Printf("%s\n%s\n[%s/%s] ", req.Title, req.Description, req.ConfirmText, req.CancelText)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", strings.ToLower(req.ConfirmText):
		gate.Accept()
	default:
		gate.Cancel()
		fmt.Println("Cancelled.")
	}
}

func fail(message string) {
	fmt.Fprintln(os.Stderr, tui.Failure(message))
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsLsCmd)
	jobsCmd.AddCommand(jobsShowCmd)
	jobsCmd.AddCommand(jobsSearchCmd)
	jobsCmd.AddCommand(jobsPostCmd)
	jobsCmd.AddCommand(jobsApplyCmd)
	jobsCmd.AddCommand(jobsCloseCmd)
	jobsCmd.AddCommand(jobsWatchCmd)

	jobsPostCmd.Flags().String("title", "", "Posting title (required)")
	jobsPostCmd.Flags().String("company", "", "Company name")
	jobsPostCmd.Flags().String("location", "", "Location")
	jobsPostCmd.Flags().String("description", "", "Markdown description")
	cobra.CheckErr(jobsPostCmd.MarkFlagRequired("title"))

	jobsApplyCmd.Flags().String("note", "", "Note to include with the application")
	jobsApplyCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	jobsCloseCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	jobsWatchCmd.Flags().DurationP("interval", "i", 30*time.Second, "Refresh interval")
}
