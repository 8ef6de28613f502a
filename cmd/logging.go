package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/single-pyo3/single-pyo3/configs"
	"github.com/single-pyo3/single-pyo3/logging"
	"github.com/single-pyo3/single-pyo3/logging/colors"
	"github.com/single-pyo3/single-pyo3/utils"
)

// commandLogs holds the log outputs set up for a command run.
type commandLogs struct {
	// file is the structured log file, or nil if no log directory is configured.
	file *os.File
}

// setupLogging configures cmdLogger and logging.GlobalLogger from the logging config. Console output goes to stderr.
// When a log directory is configured, a structured log file is created in it for the GlobalLogger.
func setupLogging(projectConfig *configs.ProjectConfig) (*commandLogs, error) {
	level, err := projectConfig.LogLevel()
	if err != nil {
		return nil, err
	}

	colored := !projectConfig.Logging.NoColor
	if !colored {
		colors.DisableColor()
		cmdLogger.RemoveWriter(os.Stderr, logging.UNSTRUCTURED, true)
		cmdLogger.AddWriter(os.Stderr, logging.UNSTRUCTURED, false)
	}
	cmdLogger.SetLevel(level)

	logging.GlobalLogger = logging.NewLogger(level)
	logging.GlobalLogger.AddWriter(os.Stderr, logging.UNSTRUCTURED, colored)

	logs := &commandLogs{}
	if projectConfig.Logging.LogDirectory != "" {
		fileName := fmt.Sprintf("single-pyo3-%s.log", time.Now().Format("2006-01-02-15-04-05"))
		logs.file, err = utils.CreateFile(projectConfig.Logging.LogDirectory, fileName)
		if err != nil {
			return nil, err
		}
		logging.GlobalLogger.AddWriter(logs.file, logging.STRUCTURED, false)
		cmdLogger.AddWriter(logs.file, logging.STRUCTURED, false)
		cmdLogger.Debug("Writing logs to ", colors.Bold, logs.file.Name(), colors.Reset)
	}
	return logs, nil
}

// Mirror returns the writer toolchain output should be copied to, or nil if there is none.
func (l *commandLogs) Mirror() io.Writer {
	if l.file == nil {
		return nil
	}
	return l.file
}

// Close detaches and closes the log file, if any.
func (l *commandLogs) Close() {
	if l.file == nil {
		return
	}
	logging.GlobalLogger.RemoveWriter(l.file, logging.STRUCTURED, false)
	cmdLogger.RemoveWriter(l.file, logging.STRUCTURED, false)
	l.file.Close()
}
