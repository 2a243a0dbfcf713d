package main

import (
	"os"

	"github.com/idilsaglam/toyboard/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args))
}
