package command

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
	"github.com/bthinkxdev/sulthan-perfume/internal/tui"
	"github.com/bthinkxdev/sulthan-perfume/notify"
)

// WatchCommandAction is the action handler for the "watch" subcommand.
// It polls the count on an interval and mirrors the client's
// cart-updated broadcasts, as a TUI on a terminal and as plain lines in
// a pipe.
func WatchCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, err := BuildClient(cmd)
	if err != nil {
		return err
	}

	interval := cmd.Duration("interval")
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	events, unsubscribe := client.Events(16)
	defer unsubscribe()

	bridge := tui.NewBridge()
	display := tui.NewDisplay(tui.DisplayOptions{
		Writer:     writerOf(cmd),
		ForcePlain: cmd.Bool("plain"),
	})

	go func() {
		defer bridge.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		poll := func() {
			res, err := client.LoadCount(ctx)
			if err != nil {
				log.Debugf("watch poll skipped: %v", err)
				return
			}
			bridge.Count(tui.CountMsg{Count: res.Count, Cached: res.Cached, Reason: res.Reason, At: time.Now()})
		}

		poll()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Name == notify.EventCartUpdated {
					bridge.CartEvent(tui.CartEventMsg{Count: ev.Count, At: ev.At})
				}
			case <-ticker.C:
				poll()
			}
		}
	}()

	if err := display.Run(ctx, bridge.Events()); err != nil {
		// Interrupt or deadline is how a watch ends; not a failure.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
	return nil
}

// WatchCommandBuilder constructs the cli.Command for "watch".
func WatchCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "watch the cart count live",
		UsageText: "cartctl watch [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "poll interval",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("watch.interval", altsrc.StringSourcer(m.Config.Source)),
				),
				Value: 5 * time.Second,
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "plain line output even on a terminal",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("watch.plain", altsrc.StringSourcer(m.Config.Source)),
				),
				Value: false,
			},
		}, NewGlobalFlags("watch", m)...),
		Action: WatchCommandAction,
	}
}
