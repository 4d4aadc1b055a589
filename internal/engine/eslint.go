package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Wladim1r/xoconf/internal/config"
	"github.com/Wladim1r/xoconf/internal/logging"
)

// DefaultBinary is the engine executable looked up on PATH when no local
// install is found.
const DefaultBinary = "eslint"

// Output is what a finished command produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes a command in dir. A non-zero exit is reported through
// Output.ExitCode, not as an error.
type Runner func(ctx context.Context, dir, name string, args ...string) (Output, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, dir, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}

// ESLint drives the engine's command line. Each Lint call writes the
// configuration to a temporary file, runs the engine with the JSON
// formatter and parses its output.
type ESLint struct {
	// Bin is the engine executable.
	Bin string
	// Dir is the directory the engine runs in; paths are relative to it.
	Dir string
	// Run executes the engine; nil means ExecRunner.
	Run Runner
}

// NewESLint returns an adapter running in dir, preferring an engine
// installed in the project's node_modules.
func NewESLint(dir string) *ESLint {
	return &ESLint{Bin: FindBinary(dir), Dir: dir, Run: ExecRunner}
}

// FindBinary returns the nearest node_modules/.bin/eslint above dir, or
// DefaultBinary.
func FindBinary(dir string) string {
	for d := dir; d != ""; {
		candidate := filepath.Join(d, "node_modules", ".bin", DefaultBinary)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	return DefaultBinary
}

// Lint implements Engine.
func (e *ESLint) Lint(ctx context.Context, paths []string, cfg *config.Config) (*Report, error) {
	if len(paths) == 0 {
		return NewReport(nil), nil
	}

	rcPath, err := writeRC(cfg)
	if err != nil {
		return nil, err
	}
	defer os.Remove(rcPath)

	args := Args(rcPath, cfg, paths)
	run := e.Run
	if run == nil {
		run = ExecRunner
	}
	bin := e.Bin
	if bin == "" {
		bin = DefaultBinary
	}

	logging.Debug().Str("bin", bin).Strs("args", args).Msg("running engine")
	out, err := run(ctx, e.Dir, bin, args...)
	if err != nil {
		return nil, fmt.Errorf("xoconf: running %s: %w", bin, err)
	}
	// Exit code 1 means problems were found.
	if out.ExitCode != 0 && out.ExitCode != 1 {
		return nil, fmt.Errorf("xoconf: %s exited with code %d: %s",
			bin, out.ExitCode, strings.TrimSpace(string(out.Stderr)))
	}

	var results []Result
	if err := json.Unmarshal(out.Stdout, &results); err != nil {
		return nil, fmt.Errorf("xoconf: parsing %s output: %w", bin, err)
	}
	return NewReport(results), nil
}

// Args returns the engine arguments for linting paths with the
// configuration stored at rcPath.
func Args(rcPath string, cfg *config.Config, paths []string) []string {
	args := []string{"--no-eslintrc", "--config", rcPath, "--format", "json"}
	if cfg.Fix {
		args = append(args, "--fix")
	}
	if cfg.Cache {
		args = append(args, "--cache")
		if cfg.CacheLocation != "" {
			args = append(args, "--cache-location", cfg.CacheLocation)
		}
	}
	return append(args, paths...)
}

func writeRC(cfg *config.Config) (string, error) {
	data, err := json.MarshalIndent(cfg.RC(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("xoconf: encoding engine config: %w", err)
	}
	f, err := os.CreateTemp("", "xoconf-*.json")
	if err != nil {
		return "", fmt.Errorf("xoconf: creating engine config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("xoconf: writing engine config: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("xoconf: writing engine config: %w", err)
	}
	return f.Name(), nil
}
