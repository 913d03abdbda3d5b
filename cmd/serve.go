package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/cobra"

	"github.com/abhisek/cmdflash/internal/api"
	"github.com/abhisek/cmdflash/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review API over HTTP on the loopback interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = e.cfg.Addr
		}

		app := api.NewApp(
			api.NewHandler(e.sched, e.lib, e.cfg.MaxCards),
			logger.New(logger.Config{Output: os.Stderr}),
		)

		fmt.Printf("Listening on http://%s\n", addr)
		return listenUntilDone(ctx, app, addr)
	},
}

// listenUntilDone serves app on addr until ctx is cancelled or Listen
// fails. It returns only after the shutdown watcher has exited.
func listenUntilDone(ctx context.Context, app *fiber.App, addr string) error {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			if err := app.Shutdown(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: shutdown: %v\n", err)
			}
		case <-done:
		}
	}()

	err := app.Listen(addr)
	close(done)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default CMDFLASH_ADDR or "+config.DefaultAddr+")")
}
