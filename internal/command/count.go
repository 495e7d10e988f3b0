package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

type countPayload struct {
	Count  int  `json:"count"`
	Cached bool `json:"cached"`
}

// CountCommandAction is the action handler for the "count" subcommand.
// It prints the cart item count, served from the five-second cache when
// a fresh entry survives from a previous invocation.
func CountCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, err := BuildClient(cmd)
	if err != nil {
		return err
	}

	res, err := client.LoadCount(ctx)
	if err != nil {
		return err
	}
	log.Debugf("count=%d cached=%v reason=%q", res.Count, res.Cached, res.Reason)

	if res.RequiresLogin {
		return errors.New("authentication required: log in to the storefront or pass --token")
	}
	if res.Reason != "" {
		return fmt.Errorf("count unavailable: %s", res.Reason)
	}

	return emit(cmd, countPayload{Count: res.Count, Cached: res.Cached}, func(w io.Writer) {
		fmt.Fprintln(w, res.Count)
	})
}

// CountCommandBuilder constructs the cli.Command for "count".
func CountCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "print the cart item count",
		UsageText: "cartctl count [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewGlobalFlags("count", m),
		Action: CountCommandAction,
	}
}
