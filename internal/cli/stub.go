package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/znsio/specmatic-catalog-admin-go/internal/docker"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a specmatic stub of the product API in docker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stub, err := docker.StartProductStub(ctx, dir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Specmatic stub server is running on %s\n", stub.URL)
		fmt.Fprintf(cmd.OutOrStdout(), "Point the admin at it with BACKEND_URL=%s\n", stub.URL)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := stub.Terminate(shutdownCtx); err != nil {
			slog.Error("failed to terminate stub container", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)
	stubCmd.Flags().String("dir", ".", "Directory holding specmatic.yaml and api/")
}
