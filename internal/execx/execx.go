// Package execx runs provisioned binaries as child processes.
package execx

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Executing launches an executable and waits for it to finish.
type Executing interface {
	Run(ctx context.Context, executable, dir string, args []string) error
}

// StreamRunner launches the target process and forwards each stdout and
// stderr line to the logger as it arrives. The wrapped tool writes
// legitimate diagnostics on stderr, so both streams log at info level.
type StreamRunner struct {
	Logger *log.Logger
}

// NewStreamRunner returns a runner that streams process output to logger.
func NewStreamRunner(logger *log.Logger) StreamRunner {
	return StreamRunner{Logger: logger}
}

func (r StreamRunner) Run(ctx context.Context, executable, dir string, args []string) error {
	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	name := filepath.Base(executable)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go r.stream(&wg, stdout)
	go r.stream(&wg, stderr)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r StreamRunner) stream(wg *sync.WaitGroup, pipe io.Reader) {
	defer wg.Done()
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r.Logger.Info(scanner.Text())
	}
}

var _ Executing = StreamRunner{}
