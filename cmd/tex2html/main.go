// Command tex2html compiles a LaTeX-subset project into preview HTML, with
// optional PDF export, a watch mode, and an HTTP compile API.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	if flags.version {
		fmt.Println("tex2html " + Version)
		return
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(run(flags))
}

func run(flags *cliFlags) int {
	cfg, err := resolveConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	switch {
	case flags.serve:
		return runServe(cfg, flags)
	case flags.watch:
		return runWatch(cfg, flags)
	default:
		return runConvert(cfg, flags)
	}
}
