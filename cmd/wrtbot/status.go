package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/keepmind9/wrtbot/internal/bot"
	"github.com/keepmind9/wrtbot/internal/core"
	"github.com/keepmind9/wrtbot/internal/router"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statusSections are the reports printed by "wrtbot status" with no argument.
var statusSections = []string{"status", "wifi", "clients"}

var statusCmd = &cobra.Command{
	Use:       "status [status|wifi|clients]",
	Short:     "Query the router once and print the report",
	Long:      "Run the same handlers the bots use against the local router and print the replies. With no argument every report is printed.",
	ValidArgs: statusSections,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		ubus, err := core.LoadUbusConfig(resolveConfigPath(configFile))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		sections := statusSections
		if len(args) == 1 {
			sections = args
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reports, err := collectReports(ctx, router.NewUbus(ubus.Path, ubus.CallTimeout()), sections)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(reports, "\n\n"))
		return nil
	},
}

// collectReports runs one handler per section concurrently and returns the
// replies in section order.
func collectReports(ctx context.Context, r router.Info, sections []string) ([]string, error) {
	reports := make([]string, len(sections))

	g, gctx := errgroup.WithContext(ctx)
	for i, section := range sections {
		command, ok := bot.ParseCommand("/"+section, "")
		if !ok {
			return nil, fmt.Errorf("unknown report %q", section)
		}
		g.Go(func() error {
			reports[i] = bot.Handle(gctx, command, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
