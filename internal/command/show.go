package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/cart"
	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

// ShowCommandAction is the action handler for the "show" subcommand. It
// loads the full cart and renders the lines with subtotals.
func ShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, err := BuildClient(cmd)
	if err != nil {
		return err
	}

	res, err := client.Load(ctx)
	if err != nil {
		return err
	}

	if res.RequiresLogin {
		return errors.New("authentication required: log in to the storefront or pass --token")
	}
	if res.Reason != "" {
		return fmt.Errorf("cart unavailable: %s", res.Reason)
	}

	return emit(cmd, res.Cart, func(w io.Writer) {
		renderCart(w, res)
	})
}

func renderCart(w io.Writer, res *cart.CartResult) {
	if len(res.Items) == 0 {
		fmt.Fprintln(w, "cart is empty")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ITEM", "QTY", "PRICE", "SUBTOTAL")
	for _, item := range res.Items {
		name := item.Name
		if name == "" {
			name = item.ID
		}
		t.Row(name, strconv.Itoa(item.Quantity), money(item.Price), money(item.Subtotal))
	}
	fmt.Fprintln(w, t)

	total := 0.0
	if res.Cart != nil {
		total = res.Cart.Total
	}
	fmt.Fprintf(w, "%d item(s), total %s\n", res.ItemCount, money(total))
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// ShowCommandBuilder constructs the cli.Command for "show".
func ShowCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show the cart's lines and totals",
		UsageText: "cartctl show [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewGlobalFlags("show", m),
		Action: ShowCommandAction,
	}
}
