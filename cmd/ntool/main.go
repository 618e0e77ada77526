package main

import (
	"fmt"
	"os"

	ntool "github.com/drand/numtheory/internal/ntool-cli"
)

func main() {
	app := ntool.CLI()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
