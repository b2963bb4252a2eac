package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atriumhq/atrium/internal/devserver"
	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/adapters/memory"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development API server",
	Long: `Serves the simulated backend dataset over the same HTTP API a remote
deployment exposes, so the remote mode can be exercised locally.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		port, _ := cmd.Flags().GetString("port")

		ds, err := memory.NewDataset()
		if err != nil {
			fmt.Printf("Error seeding dataset: %v\n", err)
			os.Exit(1)
		}

		opts := []devserver.Option{
			devserver.WithLogger(logging.New(cfg.Level())),
		}
		if cfg.Token != "" {
			opts = append(opts, devserver.WithToken(cfg.Token))
		}
		handler := devserver.NewHandler(memory.NewJobService(ds), memory.NewDirectoryService(ds), opts...)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Atrium dev server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Atrium dev server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8787", "Port to listen on")
}
