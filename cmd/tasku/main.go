package main

import (
	"fmt"
	"os"

	"tasku/internal/cli"
	"tasku/internal/config"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())
	root := cli.NewRootCommand(config.NewLoader(), factory.CreateAPI, os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
