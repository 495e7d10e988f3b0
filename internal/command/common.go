package command

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/cart"
	clilog "github.com/bthinkxdev/sulthan-perfume/internal/log"
	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
	"github.com/bthinkxdev/sulthan-perfume/session"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If
// missing or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildClient assembles the cart client from the command's flags and
// configuration. The session store persists between invocations unless
// --store memory is given.
func BuildClient(cmd *cli.Command) (*cart.Client, error) {
	base := cmd.String("base")
	if base == "" {
		return nil, errors.New("no storefront base URL (set --base, CARTCTL_BASE_URL, or base in cartctl.yaml)")
	}

	store, err := OpenStore(cmd)
	if err != nil {
		return nil, err
	}

	opts := []cart.Option{
		cart.WithStorage(store),
		cart.WithLogger(clilog.NewBridge()),
	}
	if d := cmd.Duration("timeout"); d > 0 {
		opts = append(opts, cart.WithTimeout(d))
	}

	token := cmd.String("token")
	if token == "" {
		token, _ = GetMeta(cmd).Config.GetString("token", "")
	}
	if token != "" {
		opts = append(opts, cart.WithBearerToken(token))
	}

	return cart.New(base, opts...)
}

// OpenStore resolves the --store flag into a session store. Empty means
// the per-user default directory; "memory" means nothing outlives the
// process.
func OpenStore(cmd *cli.Command) (session.Storage, error) {
	dir := cmd.String("store")
	if dir == "memory" {
		return session.NewMemoryStore(), nil
	}
	return session.NewFileStore(dir)
}

// emit renders a command result to the command's writer, as indented
// JSON under --output json or through the plain callback otherwise.
func emit(cmd *cli.Command, payload any, plain func(w io.Writer)) error {
	w := writerOf(cmd)
	if cmd.String("output") == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	plain(w)
	return nil
}

func writerOf(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// mutationError converts a failed mutation result into the error the
// command returns, so the process exits non-zero with the server's
// wording.
func mutationError(res *cart.MutateResult) error {
	if res.RequiresLogin {
		return errors.New("authentication required: log in to the storefront or pass --token")
	}
	return errors.New(res.Error)
}
