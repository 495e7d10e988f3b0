// Package meta carries per-invocation state shared by all cartctl
// subcommands.
package meta

import (
	"context"

	"github.com/bthinkxdev/sulthan-perfume/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}
