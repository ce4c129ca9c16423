package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"habit-tracker/internal/cli"
	"habit-tracker/internal/config"
	"habit-tracker/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Optional YAML config file; environment variables override it." type:"path" env:"HABITBOT_CONFIG"`
	Debug   bool   `help:"Enable debug logging."`

	Serve  cli.ServeCmd  `cmd:"" help:"Run the webhook server, the Telegram poller and the reminder schedule." default:"1"`
	Remind cli.RemindCmd `cmd:"" help:"Send the reminders due in the current hour once."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show completion statistics for a user."`
	Toggle cli.ToggleCmd `cmd:"" help:"Mark or unmark a habit as done today."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitbot"),
		kong.Description("Habit tracker chat bot and reminder dispatcher"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(&cli.Context{Config: cfg}); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
