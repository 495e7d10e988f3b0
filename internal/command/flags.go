package command

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// NewGlobalFlags builds the flags every subcommand carries. Values
// resolve flag, then environment, then the namespaced YAML key, then the
// bare YAML key.
//
// --token deliberately has no YAML source here: tokens in cartctl.yaml
// go through the config loader's strict ${VAR} expansion instead, so a
// literal secret never has to sit in the file.
func NewGlobalFlags(ns string, m meta.Meta) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "base",
			Aliases: []string{"b"},
			Usage:   "storefront base URL",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_BASE_URL"),
				yaml.YAML(ns+"."+"base", altsrc.StringSourcer(m.Config.Source)),
				yaml.YAML("base", altsrc.StringSourcer(m.Config.Source)),
			),
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "bearer token for headless use",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_TOKEN"),
			),
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_TIMEOUT"),
				yaml.YAML(ns+"."+"timeout", altsrc.StringSourcer(m.Config.Source)),
				yaml.YAML("timeout", altsrc.StringSourcer(m.Config.Source)),
			),
			Value: 0,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text or json)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(m.Config.Source)),
				yaml.YAML("output", altsrc.StringSourcer(m.Config.Source)),
			),
			Value:     OutputText,
			Validator: OutputValidator,
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "session store directory (\"memory\" for none)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_STORE"),
				yaml.YAML("store", altsrc.StringSourcer(m.Config.Source)),
			),
		},
	}
}

// OutputValidator rejects unknown --output values at parse time.
func OutputValidator(value string) error {
	switch value {
	case OutputText, OutputJSON:
		return nil
	}
	return fmt.Errorf("invalid output format %q (want %s or %s)", value, OutputText, OutputJSON)
}
