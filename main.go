package main

import (
	"os"

	"github.com/crypdick/truenas-settings-auto-backup/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
