package main

import (
	"os"

	"importtree/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
