package main

import (
	"os"

	"github.com/idepositbox/console/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
