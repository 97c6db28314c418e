package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"movielist-cli/mockapi"
)

const shutdownTimeout = 5 * time.Second

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve the API from memory for local development",
	Long:  `Serve /movies/all, /movies, /mylist and /mylist/add from a seeded in-memory catalog. Point the client at it with --api-url.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		server := &http.Server{
			Addr:              addr,
			Handler:           mockapi.New(mockapi.Seed(), rt.logger).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "Mock API listening on http://localhost%s\n", addr)
		rt.logger.Info("cmd.mock_server_started", "addr", addr)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		rt.logger.Info("cmd.mock_server_stopping")
		return server.Shutdown(ctx)
	},
}

func registerMockServerFlags() {
	mockServerCmd.Flags().String("addr", ":8089", "listen address")
}
