package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const (
	// DefaultTimeout bounds the whole pipeline of one execution.
	DefaultTimeout = 10 * time.Second

	TimedOutMessage = "Execution timed out"
	errorPrefix     = "Execution error: "
)

// exitCoder matches *exec.ExitError: the process ran and exited non-zero.
type exitCoder interface {
	ExitCode() int
}

// Runner abstracts process execution for testability.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

type commandRunner struct {
	waitDelay time.Duration
}

func (r commandRunner) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// grandchildren holding the pipes must not keep Wait blocked past the deadline
	cmd.WaitDelay = r.waitDelay
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithTimeout overrides the wall-clock limit.
func WithTimeout(d time.Duration) Option {
	return func(s *Sandbox) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithTempDir sets where source files are written.
func WithTempDir(dir string) Option {
	return func(s *Sandbox) {
		s.tempDir = dir
	}
}

// WithToolchain overrides the language binaries.
func WithToolchain(tc Toolchain) Option {
	return func(s *Sandbox) {
		s.toolchain = tc
	}
}

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(r Runner) Option {
	return func(s *Sandbox) {
		if r != nil {
			s.runner = r
		}
	}
}

// Sandbox runs code snippets as child processes under a wall-clock timeout.
// It does not restrict memory, CPU or filesystem access.
type Sandbox struct {
	timeout   time.Duration
	tempDir   string
	toolchain Toolchain
	runner    Runner
}

// New constructs a Sandbox.
func New(opts ...Option) *Sandbox {
	s := &Sandbox{
		timeout:   DefaultTimeout,
		toolchain: DefaultToolchain(),
		runner:    commandRunner{waitDelay: time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute writes code to a fresh temp file and runs it. It never returns an
// error: stdout+stderr of the run, TimedOutMessage, or "Execution error: ..."
// describe every outcome. Every file it creates is removed before returning.
func (s *Sandbox) Execute(ctx context.Context, code, language string) string {
	spec := lookupLanguage(language)

	file, err := os.CreateTemp(s.tempDir, "sandbox-*"+spec.suffix)
	if err != nil {
		return errorPrefix + err.Error()
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(code); err != nil {
		file.Close()
		return errorPrefix + err.Error()
	}
	if err := file.Close(); err != nil {
		return errorPrefix + err.Error()
	}

	p := spec.build(s.toolchain, path)
	for _, artifact := range p.artifacts {
		defer os.RemoveAll(artifact)
	}
	for _, dir := range p.outputDirs {
		if err := os.Mkdir(dir, 0o700); err != nil {
			return errorPrefix + err.Error()
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.runPipeline(ctx, p.steps)
}

func (s *Sandbox) runPipeline(ctx context.Context, steps [][]string) string {
	var output bytes.Buffer
	for i, step := range steps {
		stdout, stderr, err := s.runner.Run(ctx, step[0], step[1:])
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return TimedOutMessage
		}
		if ctx.Err() != nil {
			return errorPrefix + ctx.Err().Error()
		}

		output.Write(stdout)
		output.Write(stderr)

		// the process exited but a child it spawned still held the pipes open
		if err == nil || errors.Is(err, exec.ErrWaitDelay) {
			continue
		}

		var exitErr exitCoder
		if errors.As(err, &exitErr) {
			// a failed compile step stops the pipeline; its diagnostics are the output
			if i < len(steps)-1 {
				return output.String()
			}
			continue
		}
		return fmt.Sprintf("%s%v", errorPrefix, err)
	}
	return output.String()
}
