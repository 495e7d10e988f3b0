package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

// UpdateCommandAction is the action handler for the "update" subcommand.
// It sets the quantity of one cart line.
func UpdateCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() != 2 {
		return errors.New("usage: cartctl update ITEM-ID QUANTITY")
	}
	quantity, err := strconv.Atoi(args.Get(1))
	if err != nil {
		return fmt.Errorf("quantity %q is not a number", args.Get(1))
	}

	client, err := BuildClient(cmd)
	if err != nil {
		return err
	}

	res, err := client.UpdateItem(ctx, args.Get(0), quantity)
	if err != nil {
		return err
	}
	if !res.Success {
		return mutationError(res)
	}

	return emit(cmd, mutatePayload{Success: true, Count: res.Count, CountKnown: res.CountKnown}, func(w io.Writer) {
		if res.CountKnown {
			fmt.Fprintf(w, "updated; cart has %d item(s)\n", res.Count)
			return
		}
		fmt.Fprintln(w, "updated")
	})
}

// UpdateCommandBuilder constructs the cli.Command for "update".
func UpdateCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "change a cart line's quantity",
		UsageText: "cartctl update ITEM-ID QUANTITY [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewGlobalFlags("update", m),
		Action: UpdateCommandAction,
	}
}
