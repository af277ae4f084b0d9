package main

import (
	"os"

	"keepnotes/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
