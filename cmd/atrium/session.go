package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the signed-in session",
}

var sessionSigninCmd = &cobra.Command{
	Use:   "signin <actor-id>",
	Short: "Sign an actor into the current session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		state, err := client.Session.SignIn(cmd.Context(), client.SessionID(), args[0])
		if err != nil {
			fmt.Printf("Error signing in: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Signed in as %s on session %s\n", state.ActorID, state.SessionID)
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect the current session state",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		state, err := client.Session.Load(cmd.Context(), client.SessionID())
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", client.SessionID(), err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling state: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(cmd)
		if err := client.Logout(cmd.Context()); err != nil {
			fmt.Printf("Error ending session: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session %s ended\n", client.SessionID())
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionSigninCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionLogoutCmd)
}
