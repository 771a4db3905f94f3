package main

import (
	"os"

	"github.com/plclang/plc/pkg/cli"
)

func main() {
	os.Exit(cli.Entry(os.Args[1:]))
}
