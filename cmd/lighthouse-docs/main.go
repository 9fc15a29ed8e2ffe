package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	lighthousedocs "github.com/light-speak/lighthouse-docs"
	"github.com/light-speak/lighthouse-docs/internal"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newApp().RunContext(ctx, os.Args)
	if err != nil {
		TUIPrintln("error: %v", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lighthouse-docs",
		Usage: "Inspect and check the Lighthouse documentation site configuration",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  "config",
				Usage: "JSON or YAML site configuration, the built in configuration is used if empty",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "print",
				Usage:  "Write the site configuration",
				Action: printAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "json or yaml",
						Value: "json",
					},
					&cli.PathFlag{
						Name:  "out",
						Usage: "write to a file instead of stdout",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Check the site configuration",
				Action: validateAction,
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  "content",
						Usage: "documentation root to check links against",
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "validate again whenever the configuration file changes",
					},
				},
			},
			{
				Name:      "path",
				Usage:     "Print the public path of site links",
				ArgsUsage: "LINK...",
				Action:    pathAction,
			},
			{
				Name:   "head",
				Usage:  "Print the head tags as HTML",
				Action: headAction,
			},
			{
				Name:   "last-updated",
				Usage:  "Print when each page was last changed according to git",
				Action: lastUpdatedAction,
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     "content",
						Usage:    "documentation root inside a git repository",
						Required: true,
					},
				},
			},
		},
	}
}

func newLogger(c *cli.Context) (*slog.Logger, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.String("log-level")))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})), nil
}

func loadConfig(c *cli.Context) (lighthousedocs.SiteConfig, error) {
	conf, err := lighthousedocs.LoadConfig(c.Path("config"))
	if err != nil {
		return lighthousedocs.SiteConfig{}, fmt.Errorf("load configuration: %w", err)
	}

	return conf, nil
}

func printAction(c *cli.Context) error {
	var (
		outPath = c.Path("out")
	)

	format, err := lighthousedocs.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	if outPath == "" {
		return lighthousedocs.Encode(c.App.Writer, conf, format)
	}

	err = internal.WriteFile(outPath, func(w io.Writer) error {
		return lighthousedocs.Encode(w, conf, format)
	})
	if err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}

	return nil
}

func validateAction(c *cli.Context) error {
	var (
		configPath = c.Path("config")
		contentDir = c.Path("content")
		watch      = c.Bool("watch")
	)

	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	check := func() error {
		start := time.Now()

		conf, err := loadConfig(c)
		if err != nil {
			return err
		}

		err = lighthousedocs.Validate(conf)
		if err != nil {
			return err
		}

		if contentDir != "" {
			err = lighthousedocs.CheckPages(
				c.Context, os.DirFS(contentDir), conf)
			if err != nil {
				return err
			}
		}

		logger.Debug("validated configuration",
			"duration", time.Since(start).String())

		return nil
	}

	err = check()

	if !watch {
		if err != nil {
			printProblems(c.App.ErrWriter, err)

			return errors.New("configuration is not valid")
		}

		_, _ = fmt.Fprintln(c.App.Writer, "configuration is valid")

		return nil
	}

	if configPath == "" {
		return errors.New("--watch requires --config")
	}

	report := func(err error) {
		if err != nil {
			printProblems(c.App.ErrWriter, err)

			return
		}

		_, _ = fmt.Fprintln(c.App.Writer, "configuration is valid")
	}

	report(err)

	return internal.WatchFile(c.Context, logger, configPath, 200*time.Millisecond,
		func() {
			logger.Info("configuration changed", "file", configPath)

			report(check())
		})
}

func printProblems(w io.Writer, err error) {
	var verr *lighthousedocs.ValidationError

	if !errors.As(err, &verr) {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)

		return
	}

	for _, p := range verr.Problems {
		_, _ = fmt.Fprintf(w, "%s: %s\n", p.Path, p.Message)
	}
}

func pathAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one link is required")
	}

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	for _, link := range c.Args().Slice() {
		_, err := fmt.Fprintln(c.App.Writer,
			lighthousedocs.PublicPath(conf.Base, link))
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

func headAction(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	fragment, err := lighthousedocs.HeadHTML(conf.Head)
	if err != nil {
		return fmt.Errorf("render head: %w", err)
	}

	_, err = fmt.Fprintln(c.App.Writer, fragment)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func lastUpdatedAction(c *cli.Context) error {
	var (
		contentDir = c.Path("content")
	)

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	repo, err := lighthousedocs.OpenRepository(contentDir)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}

	absContent, err := filepath.Abs(contentDir)
	if err != nil {
		return fmt.Errorf("resolve content directory: %w", err)
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), absContent)
	if err != nil {
		return fmt.Errorf("content directory outside of repository: %w", err)
	}

	updates, err := lighthousedocs.LastUpdated(repo, filepath.ToSlash(rel), conf)
	if err != nil {
		return err
	}

	for _, link := range conf.InternalLinks() {
		u, ok := updates[link]
		if !ok {
			continue
		}

		_, err := fmt.Fprintf(c.App.Writer, "%s\t%s\n",
			link, conf.LastUpdatedLabel(u.Time))
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

func TUIPrintln(format string, a ...any) {
	_, err := fmt.Fprintf(os.Stderr, format, a...)
	if err != nil {
		println(err.Error())

		return
	}

	println()
}
