package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

// RemoveCommandAction is the action handler for the "remove" subcommand.
func RemoveCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() != 1 {
		return errors.New("usage: cartctl remove ITEM-ID")
	}

	client, err := BuildClient(cmd)
	if err != nil {
		return err
	}

	res, err := client.Remove(ctx, args.Get(0))
	if err != nil {
		return err
	}
	if !res.Success {
		return mutationError(res)
	}

	return emit(cmd, mutatePayload{Success: true, Count: res.Count, CountKnown: res.CountKnown}, func(w io.Writer) {
		if res.CountKnown {
			fmt.Fprintf(w, "removed; cart has %d item(s)\n", res.Count)
			return
		}
		fmt.Fprintln(w, "removed")
	})
}

// RemoveCommandBuilder constructs the cli.Command for "remove".
func RemoveCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove a line from the cart",
		UsageText: "cartctl remove ITEM-ID [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewGlobalFlags("remove", m),
		Action: RemoveCommandAction,
	}
}
