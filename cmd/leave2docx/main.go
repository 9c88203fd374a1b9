package main

import (
	"os"

	"github.com/roboco-io/leave2docx/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
