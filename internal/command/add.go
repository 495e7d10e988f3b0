package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
	"github.com/bthinkxdev/sulthan-perfume/session"
)

// AddCommandAction is the action handler for the "add" subcommand. It
// posts a line to the server cart, or with --stage keeps it in the local
// pre-cart for a later merge (the guest flow).
func AddCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, err := BuildClient(cmd)
	if err != nil {
		return err
	}

	item := session.PreCartItem{
		ItemType:  session.ItemTypeProduct,
		ProductID: cmd.String("product"),
		VariantID: cmd.String("variant"),
		Quantity:  cmd.Int("qty"),
	}
	if combo := cmd.String("combo"); combo != "" {
		if item.ProductID != "" {
			return errors.New("--product and --combo are mutually exclusive")
		}
		item = session.PreCartItem{
			ItemType: session.ItemTypeCombo,
			ComboID:  combo,
			Quantity: cmd.Int("qty"),
		}
	}

	if cmd.Bool("stage") {
		if err := client.PreCart().Add(item); err != nil {
			return err
		}
		items, _ := client.PreCart().Items()
		return emit(cmd, stagePayload{Staged: true, Lines: len(items)}, func(w io.Writer) {
			fmt.Fprintf(w, "staged; %d line(s) waiting for cartctl merge\n", len(items))
		})
	}

	res, err := client.Add(ctx, item)
	if err != nil {
		return err
	}
	if !res.Success {
		return mutationError(res)
	}

	return emit(cmd, mutatePayload{Success: true, Count: res.Count, CountKnown: res.CountKnown}, func(w io.Writer) {
		if res.CountKnown {
			fmt.Fprintf(w, "added; cart has %d item(s)\n", res.Count)
			return
		}
		fmt.Fprintln(w, "added")
	})
}

type stagePayload struct {
	Staged bool `json:"staged"`
	Lines  int  `json:"lines"`
}

type mutatePayload struct {
	Success    bool `json:"success"`
	Count      int  `json:"count,omitempty"`
	CountKnown bool `json:"count_known"`
}

// AddCommandBuilder constructs the cli.Command for "add".
func AddCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add a product or combo to the cart",
		UsageText: "cartctl add --product ID [--variant ID] [--qty N] [options]\n   cartctl add --combo ID [--qty N] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "product",
				Usage: "product ID to add",
			},
			&cli.StringFlag{
				Name:  "variant",
				Usage: "variant ID, when the product has sizes",
			},
			&cli.StringFlag{
				Name:  "combo",
				Usage: "combo ID to add",
			},
			&cli.IntFlag{
				Name:  "qty",
				Usage: "quantity",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "stage",
				Usage: "keep the line locally until cartctl merge",
			},
		}, NewGlobalFlags("add", m)...),
		Action: AddCommandAction,
	}
}
