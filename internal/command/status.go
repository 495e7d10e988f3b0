package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/health"
	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

var statusStyles = map[health.Status]lipgloss.Style{
	health.StatusHealthy:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	health.StatusDegraded:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	health.StatusUnhealthy: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

type checkPayload struct {
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Duration string         `json:"duration"`
	Details  map[string]any `json:"details,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type statusPayload struct {
	Overall string                  `json:"overall"`
	Checks  map[string]checkPayload `json:"checks"`
}

// StatusCommandAction is the action handler for the "status" subcommand.
// It grades the two dependencies every other subcommand needs: the
// storefront API and the local session store.
func StatusCommandAction(ctx context.Context, cmd *cli.Command) error {
	base := cmd.String("base")
	if base == "" {
		return errors.New("no storefront base URL (set --base, CARTCTL_BASE_URL, or base in cartctl.yaml)")
	}

	store, err := OpenStore(cmd)
	if err != nil {
		return err
	}

	cfg := health.AggregatorConfig{Parallel: true}
	if d := cmd.Duration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	agg := health.NewAggregator(cfg)
	agg.Register("storefront", health.NewEndpointChecker(health.EndpointCheckerConfig{
		URL: strings.TrimRight(base, "/") + "/api/cart/",
	}))
	agg.Register("session-store", health.NewStorageChecker("session-store", store))

	results := agg.CheckAll(ctx)
	overall := agg.OverallStatus(results)

	if err := emitStatus(cmd, results, overall); err != nil {
		return err
	}
	if overall == health.StatusUnhealthy {
		return errors.New("storefront unhealthy")
	}
	return nil
}

func emitStatus(cmd *cli.Command, results map[string]health.Result, overall health.Status) error {
	payload := statusPayload{
		Overall: overall.String(),
		Checks:  make(map[string]checkPayload, len(results)),
	}
	for name, res := range results {
		cp := checkPayload{
			Status:   res.Status.String(),
			Message:  res.Message,
			Duration: res.Duration.Round(time.Millisecond).String(),
			Details:  res.Details,
		}
		if res.Error != nil {
			cp.Error = res.Error.Error()
		}
		payload.Checks[name] = cp
	}

	return emit(cmd, payload, func(w io.Writer) {
		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			res := results[name]
			status := statusStyles[res.Status].Render(res.Status.String())
			fmt.Fprintf(w, "%-14s %-10s %s (%s)\n",
				name, status, res.Message, res.Duration.Round(time.Millisecond))
		}
		fmt.Fprintf(w, "\noverall: %s\n", statusStyles[overall].Render(overall.String()))
	})
}

// StatusCommandBuilder constructs the cli.Command for "status".
func StatusCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "check the storefront API and the session store",
		UsageText: "cartctl status [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewGlobalFlags("status", m),
		Action: StatusCommandAction,
	}
}
