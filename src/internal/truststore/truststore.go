// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	x509certs "github.com/H0llyW00dzZ/cr8cert/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/cr8cert/src/logger"
)

var (
	// ErrTrustStore is matched by every error reported by an external trust store utility.
	ErrTrustStore = errors.New("truststore: trust store command failed")

	// ErrUnsupportedPlatform indicates there is no trust store integration for the running OS.
	ErrUnsupportedPlatform = errors.New("truststore: unsupported platform")
)

// CommandError reports a trust store utility that exited with a non-zero status.
// Stderr holds the utility's diagnostic output verbatim.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("truststore: %q exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Unwrap makes every CommandError match ErrTrustStore.
func (e *CommandError) Unwrap() error { return ErrTrustStore }

// Store adds and removes a certificate file from the system's trusted roots.
type Store interface {
	Install(ctx context.Context, certPath string) error
	Uninstall(ctx context.Context, certPath string) error
}

// Runner executes an external command. A command that ran but exited non-zero
// reports its exit code with a nil error; err is reserved for commands that
// could not be run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stderr []byte, exitCode int, err error)
}

// ExecRunner runs commands with os/exec. Standard input and output are inherited
// so privilege prompts reach the user; standard error is captured.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	var stderr strings.Builder

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return []byte(stderr.String()), exitErr.ExitCode(), nil
	}
	if err != nil {
		return []byte(stderr.String()), -1, err
	}
	return []byte(stderr.String()), 0, nil
}

// Options configures a CommandStore.
type Options struct {
	// GOOS selects the command plan. Empty means runtime.GOOS.
	GOOS string
	// Runner executes commands. Nil means ExecRunner.
	Runner Runner
	// Sudo prefixes commands with sudo on Unix platforms.
	Sudo bool
	// LookPath reports whether a binary is installed. Nil means exec.LookPath.
	LookPath func(file string) (string, error)
	// Logger receives one line per command run. Nil discards.
	Logger logger.Logger
}

// CommandStore implements Store with the platform's trust store utilities.
type CommandStore struct {
	goos     string
	runner   Runner
	sudo     bool
	lookPath func(string) (string, error)
	log      logger.Logger
	codec    *x509certs.Certificate
}

// New returns a CommandStore configured by opts.
func New(opts Options) *CommandStore {
	s := &CommandStore{
		goos:     opts.GOOS,
		runner:   opts.Runner,
		sudo:     opts.Sudo,
		lookPath: opts.LookPath,
		log:      logger.OrDiscard(opts.Logger),
		codec:    x509certs.New(),
	}
	if s.goos == "" {
		s.goos = runtime.GOOS
	}
	if s.runner == nil {
		s.runner = ExecRunner{}
	}
	if s.lookPath == nil {
		s.lookPath = exec.LookPath
	}
	return s
}

// NewSystem returns a CommandStore for the running OS, using sudo when the
// process is not already privileged.
func NewSystem(log logger.Logger) *CommandStore {
	return New(Options{Sudo: needsSudo(), Logger: log})
}

// Install adds certPath to the trusted roots.
func (s *CommandStore) Install(ctx context.Context, certPath string) error {
	steps, err := s.installPlan(certPath)
	if err != nil {
		return err
	}
	return s.run(ctx, steps)
}

// Uninstall removes certPath from the trusted roots.
func (s *CommandStore) Uninstall(ctx context.Context, certPath string) error {
	steps, err := s.uninstallPlan(certPath)
	if err != nil {
		return err
	}
	return s.run(ctx, steps)
}

func (s *CommandStore) run(ctx context.Context, steps []step) error {
	for _, st := range steps {
		name, args := st.name, st.args
		if s.sudo && st.privileged {
			name, args = "sudo", append([]string{st.name}, st.args...)
		}

		s.log.Printf("Running %s %s", name, strings.Join(args, " "))
		stderr, code, err := s.runner.Run(ctx, name, args...)
		if err != nil {
			return fmt.Errorf("%w: run %s: %w", ErrTrustStore, name, err)
		}
		if code != 0 {
			return &CommandError{
				Command:  strings.TrimSpace(name + " " + strings.Join(args, " ")),
				ExitCode: code,
				Stderr:   string(stderr),
			}
		}
	}
	return nil
}

func needsSudo() bool {
	if runtime.GOOS == "windows" {
		return false
	}
	if os.Geteuid() == 0 {
		return false
	}
	_, err := exec.LookPath("sudo")
	return err == nil
}
