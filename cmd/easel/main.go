package main

import (
	"os"

	"github.com/easeltools/easel/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
