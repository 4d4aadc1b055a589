// Package cli implements the xoconf command line.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Wladim1r/xoconf/internal/engine"
	"github.com/Wladim1r/xoconf/internal/lint"
	"github.com/Wladim1r/xoconf/internal/logging"
)

// Version is set at build time.
var Version = "dev"

// ErrProblems is returned when linting found errors.
var ErrProblems = errors.New("xoconf: lint errors found")

// App carries the collaborators the commands use. Nil fields get defaults.
type App struct {
	// Builder resolves configurations; nil means lint.DefaultBuilder.
	Builder engine.Builder
	// Runner executes the linting engine; nil means engine.ExecRunner.
	Runner engine.Runner
}

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	if app == nil {
		app = &App{}
	}

	root := &cobra.Command{
		Use:   "xoconf [patterns...]",
		Short: "Lint JavaScript with per-file resolved ESLint configuration",
		Long: `xoconf resolves lint options from flags, XO_* environment variables and
the nearest project manifest (.xo-config.yaml or the "xo" key of
package.json), groups files by the override rules that apply to them and
runs ESLint once per group.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLint(cmd, args)
		},
	}

	f := root.PersistentFlags()
	f.Bool("fix", false, "automatically fix problems")
	f.Bool("esnext", false, "use the ESNext rule set")
	f.String("space", "", "indent with spaces instead of tabs, optionally with a width")
	f.Lookup("space").NoOptDefVal = "true"
	f.Bool("no-semicolon", false, "forbid semicolons")
	f.StringArray("env", nil, "environment to enable (repeatable)")
	f.StringArray("global", nil, "global variable to declare; name:true makes it writable (repeatable)")
	f.StringArray("ignore", nil, "additional ignore pattern (repeatable)")
	f.StringArray("plugin", nil, "ESLint plugin to load (repeatable)")
	f.StringArray("extend", nil, "shareable config to extend (repeatable)")
	f.StringArray("rule", nil, "rule setting as name=value, value in JSON (repeatable)")
	f.String("reporter", "", `output format: "text" or "json"`)
	f.String("cwd", "", "working directory (default: current directory)")
	f.String("eslint", "", "ESLint executable (default: nearest node_modules/.bin/eslint)")
	f.Int("concurrency", 0, "maximum number of groups linted at once")
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.Bool("pretty", false, "human-readable logs")

	root.AddCommand(
		app.planCmd(),
		app.printConfigCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the command line with the process arguments.
func Execute() error {
	return NewRootCmd(nil).Execute()
}

func (app *App) settings(cmd *cobra.Command) (*Settings, error) {
	s, err := Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(s.LogLevel),
		Output: cmd.ErrOrStderr(),
		Pretty: s.Pretty,
	})

	if s.Raw.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("xoconf: %w", err)
		}
		s.Raw.Cwd = wd
	}
	return s, nil
}

func (app *App) runLint(cmd *cobra.Command, patterns []string) error {
	s, err := app.settings(cmd)
	if err != nil {
		return err
	}

	eng := engine.NewESLint(s.Raw.Cwd)
	if s.ESLint != "" {
		eng.Bin = s.ESLint
	}
	if app.Runner != nil {
		eng.Run = app.Runner
	}

	rep, err := lint.Files(cmd.Context(), patterns, s.Raw, lint.Deps{
		Builder:     app.Builder,
		Engine:      eng,
		Concurrency: s.Concurrency,
	})
	if rep != nil {
		if werr := writeReport(cmd.OutOrStdout(), s.Raw.Reporter, rep); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}
	if !rep.OK() {
		return ErrProblems
	}
	return nil
}

func (app *App) planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [patterns...]",
		Short: "Print the file groups and the configuration each resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.settings(cmd)
			if err != nil {
				return err
			}
			plan, err := lint.Plan(cmd.Context(), args, s.Raw, app.Builder)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(plan); err != nil {
				return fmt.Errorf("xoconf: encoding plan: %w", err)
			}
			return enc.Close()
		},
	}
}

func (app *App) printConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print-config <file>",
		Short: "Print the configuration that applies to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.settings(cmd)
			if err != nil {
				return err
			}
			cfg, err := lint.ConfigFor(args[0], s.Raw, app.Builder)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cfg)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "xoconf", Version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("xoconf: encoding output: %w", err)
	}
	return nil
}
