package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/idilsaglam/toyboard/internal/board"
	"github.com/idilsaglam/toyboard/internal/client"
	"github.com/idilsaglam/toyboard/internal/config"
	"github.com/idilsaglam/toyboard/internal/logging"
	"github.com/idilsaglam/toyboard/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage or invalid input.
const (
	exitError = 1
	exitUsage = 2
)

// Run executes the command line (args[0] is the program name) and returns
// the process exit code.
func Run(args []string) int {
	err := newApp().Run(args)
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			ui.Fail(msg)
		}
		return ec.ExitCode()
	}
	ui.Fail(err.Error())
	return exitError
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "toyboard",
		Usage: "browse, add and like toys on a json-server /toys endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file", EnvVars: []string{"TOYBOARD_CONFIG"}},
			&cli.StringFlag{Name: "url", Usage: "base URL of the toys API (default http://localhost:3000)"},
			&cli.StringFlag{Name: "theme", Usage: "output theme: classic, neon or mono"},
			&cli.DurationFlag{Name: "timeout", Usage: "per-request timeout, 0 for none"},
			&cli.BoolFlag{Name: "color", Usage: "force colored output even when not a terminal"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colored output"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			ui.SetTheme(cfg.Theme)
			if c.IsSet("color") || c.IsSet("no-color") {
				ui.SetColorForcing(c.Bool("color"), c.Bool("no-color"))
			}
			c.App.Metadata = map[string]any{"config": cfg}
			return nil
		},
		Action: runBoard,
		Commands: []*cli.Command{
			{
				Name:   "board",
				Usage:  "Open the interactive board (default)",
				Action: runBoard,
			},
			{
				Name:   "ls",
				Usage:  "List toys as cards",
				Action: runList,
			},
			{
				Name:      "add",
				Usage:     "Add a toy",
				ArgsUsage: "<name> <image-url>",
				Action:    runAdd,
			},
			{
				Name:      "like",
				Usage:     "Like a toy",
				ArgsUsage: "<id>",
				Action:    runLike,
			},
			serveCommand,
		},
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return cli.Exit(err.Error(), exitUsage)
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("url") {
		cfg.APIURL = c.String("url")
	}
	if c.IsSet("theme") {
		cfg.Theme = c.String("theme")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	return cfg, nil
}

func configFrom(c *cli.Context) *config.Config {
	return c.App.Metadata["config"].(*config.Config)
}

// fileLogger sends logs to the configured file; the terminal belongs to
// the board or to command output.
func fileLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	f, err := tea.LogToFile(cfg.LogFile, "toyboard")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(cfg.Env, f), f, nil
}

func newClient(cfg *config.Config) (*client.Client, error) {
	return client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout))
}

// newController builds a controller whose alerts go to stderr.
func newController(cfg *config.Config, log *slog.Logger) (*board.Controller, error) {
	cl, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return board.NewController(cl, board.New(), board.AlertFunc(ui.Fail), log), nil
}

// withController runs fn with a CLI controller and maps its error to an
// exit code. Alerts are already printed, so the exit carries no message.
func withController(c *cli.Context, fn func(ctrl *board.Controller) error) error {
	cfg := configFrom(c)
	log, closer, err := fileLogger(cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	defer closer.Close()

	ctrl, err := newController(cfg, log)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	start := time.Now()
	err = fn(ctrl)
	log.Debug("command finished", slog.String("cmd", c.Command.Name), slog.Duration("took", time.Since(start)))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, board.ErrInvalidToy), errors.Is(err, errUnknownToy):
		return cli.Exit("", exitUsage)
	default:
		return cli.Exit("", exitError)
	}
}
