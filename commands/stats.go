package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"storefront/models"
	"storefront/services"

	"github.com/spf13/cobra"
)

func statsCmd(opts *rootOptions) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Watch the admin dashboard counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stats := services.NewStatsService(a.client, a.session, services.StatsOptions{
				Interval: a.cfg.StatsPollInterval,
				Timeout:  a.cfg.RequestTimeout,
			})
			return runStats(ctx, stats, cmd.OutOrStdout(), once)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Print the first result and exit")
	return cmd
}

func runStats(ctx context.Context, stats *services.StatsService, out io.Writer, once bool) error {
	outcomes := make(chan struct{}, 1)
	stats.OnUpdate(func(current models.AdminStats, err error) {
		if err != nil {
			fmt.Fprintf(out, "! %s\n", stats.Banner())
		} else {
			fmt.Fprintf(out, "Users: %d  Chats: %d\n", current.Users, current.Chats)
		}
		select {
		case outcomes <- struct{}{}:
		default:
		}
	})

	if err := stats.Start(ctx); err != nil {
		return err
	}
	defer stats.Stop()

	if !once {
		<-ctx.Done()
		return nil
	}

	select {
	case <-outcomes:
		return stats.LastError()
	case <-ctx.Done():
		return nil
	}
}
