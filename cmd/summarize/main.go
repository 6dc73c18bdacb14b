package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"doc-summarizer/internal/app"
	"doc-summarizer/internal/logger"
	"doc-summarizer/internal/response"
	"doc-summarizer/internal/service"
)

// errUnsuccessful marks a run whose envelope reported success=false. The
// envelope itself has already been printed.
var errUnsuccessful = errors.New("request was not successful")

// buildFunc constructs the document service and a cleanup func.
type buildFunc func() (service.Documents, func(), error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp(buildFromEnv, os.Stdout).RunContext(ctx, os.Args)
	if err == nil {
		return
	}
	if !errors.Is(err, errUnsuccessful) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

// buildFromEnv logs to stderr so stdout carries only the JSON envelope.
func buildFromEnv() (service.Documents, func(), error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	deps, err := app.BuildWith(cfg, logger.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	if err != nil {
		return nil, nil, err
	}
	return deps.Documents, deps.Close, nil
}

func newApp(build buildFunc, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "summarize",
		Usage:     "Extract and summarize a PDF, TXT or DOCX document",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Value:   "brief",
				Usage:   "summary type: brief, detailed, bullet_points, technical, layman",
			},
			&cli.BoolFlag{
				Name:  "extract-only",
				Usage: "print the extracted text without summarizing",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one FILE argument, got %d", c.NArg())
			}
			path := c.Args().First()

			docs, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()

			resp := docs.Summarize
			if c.Bool("extract-only") {
				resp = func(ctx context.Context, path, _ string) response.Response {
					return docs.Extract(ctx, path)
				}
			}
			r := resp(c.Context, path, c.String("type"))

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
			if !r.Success {
				return errUnsuccessful
			}
			return nil
		},
	}
}
