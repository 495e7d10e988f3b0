// Command cartctl drives a storefront cart from the command line: one-shot
// cart operations, a live count watcher, and a dependency status report.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bthinkxdev/sulthan-perfume/internal/command"
	clilog "github.com/bthinkxdev/sulthan-perfume/internal/log"
)

// version is stamped by the release build via -ldflags "-X main.version=...".
var version = "dev"

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	clilog.Init()

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
