package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shellkit/jsh/internal/config"
	"github.com/shellkit/jsh/internal/shell"
)

// TODO: Inject version at build time.
const version = "0.1.0"

type cliFlags struct {
	verbose    bool
	noPrompt   bool
	configPath string
}

func rootCmd() *cobra.Command {
	flags := &cliFlags{}

	command := &cobra.Command{
		Use:          "jsh",
		Short:        "Interactive shell with job control",
		Example:      "  jsh --verbose",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, flags)
		},
	}

	command.CompletionOptions.HiddenDefaultCmd = true

	bindFlags(command.Flags(), flags)

	return command
}

func bindFlags(fs *pflag.FlagSet, flags *cliFlags) {
	fs.BoolVarP(
		&flags.verbose,
		"verbose",
		"v",
		false,
		"Emit additional diagnostic output",
	)

	fs.BoolVarP(
		&flags.noPrompt,
		"no-prompt",
		"p",
		false,
		"Do not emit a command prompt (for driving the shell from a pipe)",
	)

	fs.StringVar(
		&flags.configPath,
		"config",
		defaultConfigPath(),
		"Path to configuration file",
	)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".jshrc")
}

func runShell(cmd *cobra.Command, flags *cliFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	// Flags override file values.
	if flags.verbose {
		cfg.Verbose = true
	}
	if flags.noPrompt {
		cfg.EmitPrompt = false
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(
		cmd.ErrOrStderr(),
		&slog.HandlerOptions{Level: level},
	))

	logger.Debug(
		"starting shell",
		"session", uuid.NewString(),
		"version", version,
	)

	sh := shell.New(cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
	defer sh.Close()

	return sh.Run()
}
