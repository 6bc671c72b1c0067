// Package main provides the postwave CLI for running the post pipeline from
// a terminal.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"

	"github.com/kaljuvee/postwave/pkg/log"
)

func main() {
	_ = godotenv.Load()

	command := &cli.Command{
		Name:                  "postwave",
		Usage:                 "Turn a web page into social media posts",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			RunCommand(),
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		log.Setup("error")
		log.WithModule("cli").Error("Command failed", "error", err)
		os.Exit(1)
	}
}
