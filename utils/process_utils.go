package utils

import (
	"bytes"
	"io"
	"os/exec"
	"sync"
)

// RunCommandWithOutputAndError runs a given exec.Cmd and returns the stdout, stderr, and
// combined output as bytes, or an error if one occurred.
func RunCommandWithOutputAndError(command *exec.Cmd) ([]byte, []byte, []byte, error) {
	// Create our buffers to capture output and errors.
	var bStdout, bStderr, bCombined bytes.Buffer

	// Create a synchronized writer over bCombined to avoid data race.
	var combinedWriter io.Writer = &synchronizedWriter{writer: &bCombined}

	// Create multi writers to capture output into individual and combined buffers
	command.Stdout = io.MultiWriter(&bStdout, combinedWriter)
	command.Stderr = io.MultiWriter(&bStderr, combinedWriter)

	// Execute the command
	err := command.Run()

	return bStdout.Bytes(), bStderr.Bytes(), bCombined.Bytes(), err
}

// RunCommandWithForwardedOutput runs a given exec.Cmd while streaming its stdout and stderr live to the provided
// writers. Any additional mirror writers receive both streams, serialized so lines from the two streams do not
// interleave mid-write. Nil writers are skipped.
func RunCommandWithForwardedOutput(command *exec.Cmd, stdout io.Writer, stderr io.Writer, mirrors ...io.Writer) error {
	stdoutWriters := make([]io.Writer, 0, 1+len(mirrors))
	stderrWriters := make([]io.Writer, 0, 1+len(mirrors))
	if stdout != nil {
		stdoutWriters = append(stdoutWriters, stdout)
	}
	if stderr != nil {
		stderrWriters = append(stderrWriters, stderr)
	}
	for _, mirror := range mirrors {
		if mirror == nil {
			continue
		}
		synced := &synchronizedWriter{writer: mirror}
		stdoutWriters = append(stdoutWriters, synced)
		stderrWriters = append(stderrWriters, synced)
	}

	command.Stdout = io.MultiWriter(stdoutWriters...)
	command.Stderr = io.MultiWriter(stderrWriters...)
	return command.Run()
}

// ExitCodeFromError extracts the process exit code from an error returned by exec.Cmd. The boolean is false if the
// process never started (e.g. the binary could not be found). A process terminated by a signal reports -1 and true.
func ExitCodeFromError(err error) (int, bool) {
	if err == nil {
		return 0, true
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), true
	}
	return -1, false
}

// synchronizedWriter wraps an io.Writer to avoid a data race when writing.
type synchronizedWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

func (s *synchronizedWriter) Write(p []byte) (n int, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.writer.Write(p)
}
