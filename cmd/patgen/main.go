package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/Hanaasagi/patgen/cmd"
	"github.com/Hanaasagi/patgen/internal/logger"
	"github.com/Hanaasagi/patgen/pkg/clipboard"
	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const appName = "patgen"

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var (
	appDir            = filepath.Join(xdg.StateHome, appName)
	defaultConfigPath = filepath.Join(xdg.ConfigHome, appName, "config.toml")
)

// AppConfig holds the global flags and the loaded configuration
type AppConfig struct {
	configFile  string
	logFile     string
	logLevel    string
	copy        bool
	showVersion bool

	config    *Config
	logCloser io.Closer
}

// setup loads the configuration and starts logging. Flags given on the
// command line win over the file.
func (app *AppConfig) setup(c *cobra.Command) error {
	config, err := LoadConfigFromFile(app.configFile)
	if err != nil {
		return err
	}
	app.config = config

	flags := c.Flags()
	if !flags.Changed("log-level") {
		app.logLevel = config.Core.LogLevel
	}
	if !flags.Changed("copy") {
		app.copy = config.Core.Copy
	}

	closer, err := logger.InitLogger(app.logFile, app.logLevel)
	if err != nil {
		return err
	}
	app.logCloser = closer
	slog.Debug("Starting", "command", c.CommandPath(), "version", FullVersion, "config", app.configFile)
	return nil
}

func (app *AppConfig) teardown() error {
	if app.logCloser == nil {
		return nil
	}
	return app.logCloser.Close()
}

// emit prints text and, when asked, copies primary to the clipboard. A
// failed copy is reported but does not fail the command.
func (app *AppConfig) emit(c *cobra.Command, primary, text string) {
	fmt.Fprintln(c.OutOrStdout(), text)
	if !app.copy {
		return
	}

	cb := clipboard.New(clipboard.WithTargets(app.config.Core.Clipboard...), clipboard.WithOutput(c.ErrOrStderr()))
	if err := cb.Copy(c.Context(), primary); err != nil {
		slog.Warn("Copy to clipboard failed", "error", err)
		fmt.Fprintln(c.ErrOrStderr(), color.YellowString("copy failed: %v", err))
	}
}

func newRootCmd(app *AppConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Infer regex patterns and TextFSM templates from example text",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Infer regular expressions and TextFSM templates from example text. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return app.setup(c)
		},
		PersistentPostRunE: func(c *cobra.Command, args []string) error {
			return app.teardown()
		},
		RunE: func(c *cobra.Command, args []string) error {
			if app.showVersion {
				fmt.Fprintf(c.OutOrStdout(), "%s version: %s\n", appName, FullVersion)
				return nil
			}
			return c.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configFile, "config", defaultConfigPath, "Path of the TOML config file")
	flags.StringVar(&app.logFile, "log-file", filepath.Join(appDir, appName+".log"), "Path of the log file")
	flags.StringVar(&app.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolVarP(&app.copy, "copy", "c", false, "Copy the generated output to the clipboard")
	_ = flags.MarkHidden("log-file")
	rootCmd.Flags().BoolVarP(&app.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupInfer, Title: "Inference Commands:"},
		&cobra.Group{ID: groupTemplate, Title: "Template Commands:"},
	)
	rootCmd.AddCommand(
		newClassifyCmd(app),
		newRecommendCmd(app),
		newLineCmd(app),
		newTableCmd(app),
		newIterateCmd(app),
		newTemplateCmd(app),
		newVerifyCmd(app),
		newConfigCmd(app),
	)

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})
	return rootCmd
}

func main() {
	if err := os.MkdirAll(appDir, 0o755); err == nil {
		crashFilePath := filepath.Join(appDir, "crash")
		if f, err := os.Create(crashFilePath); err == nil {
			_ = debug.SetCrashOutput(f, debug.CrashOptions{})
		}
	}

	if err := newRootCmd(&AppConfig{}).Execute(); err != nil {
		slog.Error("Error executing command", "error", err)
		os.Exit(1)
	}
}
