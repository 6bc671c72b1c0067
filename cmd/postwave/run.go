package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	pwcmd "github.com/kaljuvee/postwave/pkg/cmd"
	"github.com/kaljuvee/postwave/pkg/log"
	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/pipeline"
)

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Fetch a URL, generate drafts and optionally publish them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "Source URL to fetch content from",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "platforms",
				Usage:   "Target platforms (twitter, linkedin, reddit)",
				Value:   []string{"twitter", "linkedin"},
				Sources: cli.EnvVars("POSTWAVE_PLATFORMS"),
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Post style (professional, casual, technical)",
				Value: "professional",
			},
			&cli.StringFlag{
				Name:    "generator",
				Usage:   "Draft generator (anthropic, template)",
				Value:   "template",
				Sources: cli.EnvVars("POSTWAVE_GENERATOR"),
			},
			&cli.StringFlag{
				Name:    "publisher",
				Usage:   "Post publisher (arcade, sandbox)",
				Value:   "sandbox",
				Sources: cli.EnvVars("POSTWAVE_PUBLISHER"),
			},
			&cli.StringFlag{
				Name:    "anthropic-api-key",
				Usage:   "Anthropic API key for the anthropic generator",
				Sources: cli.EnvVars("ANTHROPIC_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "arcade-api-key",
				Usage:   "Arcade API key",
				Sources: cli.EnvVars("ARCADE_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "arcade-user-id",
				Usage:   "Arcade user the platform grants belong to",
				Sources: cli.EnvVars("ARCADE_USER_ID"),
			},
			&cli.BoolFlag{
				Name:  "approve",
				Usage: "Approve and publish the drafts without prompting",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("cli")

			reg := pwcmd.NewRegistry(logger)

			fetcher, generator, publisher, err := pwcmd.Collaborators(ctx, reg, pwcmd.CollaboratorConfig{
				Generator:       command.String("generator"),
				Publisher:       command.String("publisher"),
				AnthropicAPIKey: command.String("anthropic-api-key"),
				ArcadeAPIKey:    command.String("arcade-api-key"),
				ArcadeUserID:    command.String("arcade-user-id"),
			})
			if err != nil {
				return err
			}

			engine := pipeline.NewEngine(fetcher, generator, publisher, pipeline.WithLogger(logger))

			run := engine.Start(ctx, models.ContentRequest{
				URL:       command.String("url"),
				Platforms: command.StringSlice("platforms"),
				Style:     command.String("style"),
			})

			printRun(run)

			if run.Status != models.RunStatusAwaitingApproval {
				if run.Status == models.RunStatusFailed {
					return fmt.Errorf("run %s failed", run.ID)
				}

				return nil
			}

			if !command.Bool("approve") {
				fmt.Printf("\nRun %s is awaiting approval. Re-run with --approve to publish.\n", run.ID)

				_, err = engine.Cancel(ctx, run.ID)

				return err
			}

			run, err = engine.Decide(ctx, run.ID, true)
			if err != nil {
				return err
			}

			printRun(run)

			return nil
		},
	}
}

func printRun(run *models.RunState) {
	fmt.Printf("run %s  status=%s\n", run.ID, run.Status)

	for _, post := range run.Posts {
		fmt.Printf("\n--- %s (%s) ---\n%s\n", post.Platform, post.Status, post.Content)

		if id := post.PlatformPostID(); id != "" {
			fmt.Printf("published as %s\n", id)
		}
	}

	for _, msg := range run.Errors {
		fmt.Printf("\nerror: %s\n", msg)
	}
}
