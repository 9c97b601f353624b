package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[cchk] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "cchk"
	app.Usage = "Staking auto-compound checker (cchk)."
	app.Commands = append(app.Commands, initCommand, checkCommand, startCommand, devNodeCommand, keysCommand)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
