package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

type mergePayload struct {
	Success    bool `json:"success"`
	Merged     int  `json:"merged"`
	Count      int  `json:"count,omitempty"`
	CountKnown bool `json:"count_known"`
}

// MergeCommandAction is the action handler for the "merge" subcommand.
// It pushes locally staged lines into the server cart, typically right
// after logging in.
func MergeCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, err := BuildClient(cmd)
	if err != nil {
		return err
	}

	res, err := client.MergeSession(ctx)
	if err != nil {
		return err
	}
	log.Debugf("merged=%d success=%v", res.Merged, res.Success)

	if !res.Success {
		return mutationError(res)
	}

	payload := mergePayload{Success: true, Merged: res.Merged, Count: res.Count, CountKnown: res.CountKnown}
	return emit(cmd, payload, func(w io.Writer) {
		if res.Merged == 0 {
			fmt.Fprintln(w, "nothing staged; cart unchanged")
			return
		}
		if res.CountKnown {
			fmt.Fprintf(w, "merged %d line(s); cart has %d item(s)\n", res.Merged, res.Count)
			return
		}
		fmt.Fprintf(w, "merged %d line(s)\n", res.Merged)
	})
}

// MergeCommandBuilder constructs the cli.Command for "merge".
func MergeCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "merge staged lines into the server cart",
		UsageText: "cartctl merge [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewGlobalFlags("merge", m),
		Action: MergeCommandAction,
	}
}
