package main

import (
	"os"

	"github.com/pthm/geoadmin/cmd/geoadmin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
