package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/srinijamadireddy19/Blog-Digest/config"
	"github.com/srinijamadireddy19/Blog-Digest/internal/logging"
	"github.com/srinijamadireddy19/Blog-Digest/internal/monitoring"
)

func NewApp() *cli.App {
	return &cli.App{
		Name:  "blogdigest",
		Usage: "Submit blog content for processing and browse the results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Processing service base URL (overrides the configured one)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			config.LoadEnv(config.AppEnv())
			logging.InitLoggerTo(c.App.ErrWriter, c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "Submit a link, text or picture",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "link", Usage: "URL of a blog post"},
					&cli.StringFlag{Name: "text", Usage: "Text to process"},
					&cli.StringFlag{Name: "text-file", Usage: "Read the text to process from a file"},
					&cli.StringFlag{Name: "picture", Usage: "Path to an image"},
					&cli.StringFlag{Name: "action", Value: "summary", Usage: "summary, pdf, keywords, topics, sentiment or translation"},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Keep browsing tabs after the result loads"},
				},
				Action: SubmitAction,
			},
			{
				Name:  "result",
				Usage: "Show a stored result",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Result id returned by submit"},
					&cli.StringFlag{Name: "tab", Value: "summary", Usage: "Format to show"},
				},
				Action: ResultAction,
			},
			{
				Name:  "health",
				Usage: "Check the processing service",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "watch", Usage: "Keep probing until interrupted"},
					&cli.DurationFlag{Name: "interval", Value: monitoring.HEALTHCHECK_TIMER, Usage: "Probe interval for --watch"},
				},
				Action: HealthAction,
			},
		},
	}
}
