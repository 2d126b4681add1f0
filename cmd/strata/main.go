package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/strata/app"
	"github.com/lixenwraith/strata/cli"
)

func main() {
	if len(os.Args) > 1 {
		if !cli.IsSubcommand(os.Args[1]) {
			fmt.Fprintf(os.Stderr, "strata: unknown command %q\n", os.Args[1])
			os.Exit(2)
		}
		os.Exit(cli.Run(cli.DefaultEnv(), os.Args[1:]))
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "strata: interactive mode needs a terminal (try `strata help`)")
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before any panic reaches the user.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()

	a, err := app.New(screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	a.Run()
	screen.Fini()
}
