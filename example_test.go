package atrium_test

import (
	"context"
	"fmt"
	"log"

	"github.com/atriumhq/atrium"
	"github.com/atriumhq/atrium/pkg/config"
)

// ExampleNew demonstrates the simulated backend: no server, no network,
// just the seeded dataset behind the same facades remote mode uses.
func ExampleNew() {
	client, err := atrium.New(&config.Config{Backend: config.ModeSimulated, SessionID: "demo"})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	env := client.Jobs.Search(ctx, "maple")
	if !env.Success {
		log.Fatal(env.Reason())
	}

	for _, job := range env.Data {
		fmt.Printf("%s (%s)\n", job.Title, job.Status)
	}

	// Output:
	// Backend Engineer (open)
	// Site Reliability Engineer (open)
}

// ExampleClient_HasApplied shows the derived-query cache in front of the
// job board: sign in, ask, and the second ask never reaches the backend.
func ExampleClient_HasApplied() {
	client, err := atrium.New(&config.Config{Backend: config.ModeSimulated, SessionID: "demo"})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := client.Session.SignIn(ctx, "demo", "prof-0004"); err != nil {
		log.Fatal(err)
	}

	applied, err := client.HasApplied(ctx, "job-0002")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(applied)

	// Output:
	// true
}
