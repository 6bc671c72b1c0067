// Package main provides the Postwave API server.
package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"

	pwcmd "github.com/kaljuvee/postwave/pkg/cmd"
	"github.com/kaljuvee/postwave/pkg/config"
	"github.com/kaljuvee/postwave/pkg/log"
	"github.com/kaljuvee/postwave/pkg/otelhelper"
	"github.com/kaljuvee/postwave/pkg/pipeline"
	"github.com/kaljuvee/postwave/pkg/protocol"
)

const defaultPort = 9091

func main() {
	_ = godotenv.Load()

	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "postwave-api",
		Usage:                 "Generate, review and publish social media posts",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a postwave.yaml collaborator config (overrides collaborator flags)",
				Sources: cli.EnvVars("POSTWAVE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma-separated Kafka broker addresses",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "fetcher",
				Usage:   "Content fetcher (web)",
				Value:   "web",
				Sources: cli.EnvVars("POSTWAVE_FETCHER"),
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
				Name:    "anthropic-model",
				Usage:   "Anthropic model identifier",
				Sources: cli.EnvVars("ANTHROPIC_MODEL"),
			},
			&cli.StringFlag{
				Name:    "arcade-url",
				Usage:   "Arcade API base URL",
				Sources: cli.EnvVars("ARCADE_BASE_URL"),
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
			&cli.DurationFlag{
				Name:    "approval-ttl",
				Usage:   "How long a run may wait for approval before it is auto-rejected (0 = forever)",
				Sources: cli.EnvVars("APPROVAL_TTL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OpenTelemetry tracing",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Postwave API")

			reg := pwcmd.NewRegistry(logger)

			var (
				fetcher   protocol.Fetcher
				generator protocol.Generator
				publisher protocol.Publisher
				ttl       = command.Duration("approval-ttl")
			)

			if path := command.String("config"); path != "" {
				cfg, err := config.Load(path)
				if err != nil {
					return err
				}

				if fetcher, err = reg.CreateFetcher(ctx, cfg.Fetcher.Type, cfg.Fetcher.Configuration); err != nil {
					return err
				}

				if generator, err = reg.CreateGenerator(ctx, cfg.Generator.Type, cfg.Generator.Configuration); err != nil {
					return err
				}

				if publisher, err = reg.CreatePublisher(ctx, cfg.Publisher.Type, cfg.Publisher.Configuration); err != nil {
					return err
				}

				if ttl, err = cfg.TTL(); err != nil {
					return err
				}
			} else {
				var err error

				fetcher, generator, publisher, err = pwcmd.Collaborators(ctx, reg, pwcmd.CollaboratorConfig{
					Fetcher:         command.String("fetcher"),
					Generator:       command.String("generator"),
					Publisher:       command.String("publisher"),
					AnthropicAPIKey: command.String("anthropic-api-key"),
					AnthropicModel:  command.String("anthropic-model"),
					ArcadeBaseURL:   command.String("arcade-url"),
					ArcadeAPIKey:    command.String("arcade-api-key"),
					ArcadeUserID:    command.String("arcade-user-id"),
				})
				if err != nil {
					return err
				}
			}

			var brokers []string
			if raw := command.String("kafka-brokers"); raw != "" {
				brokers = strings.Split(raw, ",")
			}

			eventBus, err := pwcmd.NewEventBus(command.String("event-bus"), brokers, logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			opts := []pipeline.Option{
				pipeline.WithLogger(logger),
				pipeline.WithEventBus(eventBus),
			}

			if ttl > 0 {
				opts = append(opts, pipeline.WithApprovalTTL(ttl))
			}

			if command.Bool("tracing") {
				tracer, err := otelhelper.NewTracer(ctx, "postwave-api")
				if err != nil {
					return err
				}

				opts = append(opts, pipeline.WithTracer(tracer))
			}

			engine := pipeline.NewEngine(fetcher, generator, publisher, opts...)

			api := NewAPI(logger, engine, reg)

			err = api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
