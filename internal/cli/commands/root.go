package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	noColor bool
)

// errReported marks an error whose message a command has already written in
// full; Execute only turns it into a non-zero exit.
var errReported = errors.New("reported")

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "classview",
		Short: "Browse and query a reflected class catalogue",
		Long: color.CyanString(`classview - reflected class catalogue browser

classview loads class, struct and enum dumps exported from a game engine's
reflection system and answers filter queries over them, from the command
line or over HTTP.

Filters:
  • name, extends, deepextends, namespace, has, hasprop
  • ! negates, " matches exactly, . matches case`),
		Example: `  # Serve the JSON API on localhost:3500
  classview serve

  # Classes and structs deriving from Actor that replicate functions
  classview query 'deepextends:"Actor' has:repfunctions

  # Everything about one class
  classview show Engine.Pawn

  # Report integrity issues, failing on any
  classview check --strict`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./classview.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewQueryCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the classview version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "classview version: ")
			fmt.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
