package main

import (
	"fmt"
	"os"

	"taskdeck/internal/cli"
	"taskdeck/internal/logger"
)

func main() {
	cmd := cli.NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		logger.Error("command failed: %v", err)
	}
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
