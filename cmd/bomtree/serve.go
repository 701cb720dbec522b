package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/partstack/bomtree"
	"github.com/partstack/bomtree/internal/logging"
	"github.com/partstack/bomtree/internal/presentation/tui"
	httpAdapter "github.com/partstack/bomtree/pkg/adapters/http"
	redisAdapter "github.com/partstack/bomtree/pkg/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the bomtree engine in server mode, exposing the assembly tree API and the browser pages over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")

		// Server logs go to stderr as JSON lines.
		logger := logging.NewJSON(newLogLevel(cmd))

		repo, err := newRepository(cmd)
		if err != nil {
			fmt.Printf("Error initializing bomtree: %v\n", err)
			os.Exit(1)
		}
		if redisAddr != "" {
			repo = redisAdapter.New(redisAddr, redisPassword, redisDB, repo,
				redisAdapter.WithTTL(cacheTTL),
				redisAdapter.WithLogger(logger),
			)
		}

		engine := bomtree.New(repo, bomtree.WithLogger(logger))
		handler := httpAdapter.NewHandler(engine, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		tui.PrintBanner(bomtree.Version)

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Bomtree Server on %s\n", srv.Addr)
			if redisAddr != "" {
				fmt.Printf("Caching lookups in redis at %s\n", redisAddr)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
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
			fmt.Println("Bomtree Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for read-through caching (empty disables)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("cache-ttl", 5*time.Minute, "Cache entry lifetime (with --redis)")
}
