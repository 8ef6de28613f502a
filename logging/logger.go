package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/logging/colors"
)

// GlobalLogger describes a Logger that is disabled by default and is configured when a command starts. Each
// module/package should create its own sub-logger. This allows to create unique logging instances depending on the use
// case.
var GlobalLogger = NewLogger(zerolog.Disabled)

// Logger describes a custom logging object that can log events to any arbitrary channel in structured, unstructured,
// or unstructured-and-colorized format.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// fields describes the key-value context attached to every event (see NewSubLogger).
	fields []contextField

	// structuredLogger outputs JSON events to structuredWriters.
	structuredLogger zerolog.Logger

	// unstructuredLogger outputs plain console-formatted events to unstructuredWriters.
	unstructuredLogger zerolog.Logger

	// unstructuredColorLogger outputs colorized console-formatted events to unstructuredColorWriters.
	unstructuredColorLogger zerolog.Logger

	structuredWriters        []io.Writer
	unstructuredWriters      []io.Writer
	unstructuredColorWriters []io.Writer
}

// contextField is a single key-value pair of sub-logger context.
type contextField struct {
	key   string
	value string
}

// LogFormat describes what format to log in
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. The Logger has no writers until AddWriter is
// called, so it is silent by default.
func NewLogger(level zerolog.Level) *Logger {
	l := &Logger{
		level:                    level,
		structuredWriters:        make([]io.Writer, 0),
		unstructuredWriters:      make([]io.Writer, 0),
		unstructuredColorWriters: make([]io.Writer, 0),
	}
	l.rebuild()
	return l
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of this
// function is for each package to have their own unique logger so that parsing of logs is "grep-able" based on some key
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	sub := &Logger{
		level:                    l.level,
		fields:                   append(append([]contextField{}, l.fields...), contextField{key: key, value: value}),
		structuredWriters:        l.structuredWriters,
		unstructuredWriters:      l.unstructuredWriters,
		unstructuredColorWriters: l.unstructuredColorWriters,
	}
	sub.rebuild()
	return sub
}

// AddWriter will add a writer to the list of channels where log output will be sent. Colorization is only applied to
// unstructured writers.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat, colored bool) {
	list := l.writerList(format, colored)
	for _, w := range *list {
		if w == writer {
			return
		}
	}
	*list = append(*list, writer)
	l.rebuild()
}

// RemoveWriter will remove a writer from the list of writers that the logger manages. If the writer does not exist, this
// function is a no-op
func (l *Logger) RemoveWriter(writer io.Writer, format LogFormat, colored bool) {
	list := l.writerList(format, colored)
	for i, w := range *list {
		if w == writer {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			l.rebuild()
			return
		}
	}
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.rebuild()
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.emit(zerolog.DebugLevel, args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.emit(zerolog.InfoLevel, args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.emit(zerolog.WarnLevel, args...)
}

// Error is a wrapper function that will log an error event.
func (l *Logger) Error(args ...any) {
	l.emit(zerolog.ErrorLevel, args...)
}

// Panic is a wrapper function that will log a panic event and then panic.
func (l *Logger) Panic(args ...any) {
	l.emit(zerolog.PanicLevel, args...)
}

// writerList returns a pointer to the writer list matching the format/color combination.
func (l *Logger) writerList(format LogFormat, colored bool) *[]io.Writer {
	if format == STRUCTURED {
		return &l.structuredWriters
	}
	if colored {
		return &l.unstructuredColorWriters
	}
	return &l.unstructuredWriters
}

// rebuild recreates the underlying zerolog loggers after the level, context or writers changed.
func (l *Logger) rebuild() {
	l.structuredLogger = l.withContext(newZerolog(l.level, l.structuredWriters, func(w io.Writer) io.Writer {
		return w
	}).With().Timestamp().Logger())

	l.unstructuredLogger = l.withContext(newZerolog(l.level, l.unstructuredWriters, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, l.level)
	}))

	l.unstructuredColorLogger = l.withContext(newZerolog(l.level, l.unstructuredColorWriters, func(w io.Writer) io.Writer {
		return &colorAwareWriter{
			colored: setupDefaultFormatting(zerolog.ConsoleWriter{Out: w}, l.level),
			plain:   setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, l.level),
		}
	}))
}

// colorAwareWriter formats events with colors only while colors.Enabled reports true, so colored outputs follow
// colors.DisableColor without rebuilding the logger.
type colorAwareWriter struct {
	colored zerolog.ConsoleWriter
	plain   zerolog.ConsoleWriter
}

func (w *colorAwareWriter) Write(p []byte) (int, error) {
	if colors.Enabled() {
		return w.colored.Write(p)
	}
	return w.plain.Write(p)
}

// withContext attaches the sub-logger fields to the given logger.
func (l *Logger) withContext(logger zerolog.Logger) zerolog.Logger {
	ctx := logger.With()
	for _, f := range l.fields {
		ctx = ctx.Str(f.key, f.value)
	}
	return ctx.Logger()
}

// newZerolog creates a zerolog.Logger over the wrapped writers, or a disabled logger when there are none.
func newZerolog(level zerolog.Level, writers []io.Writer, wrap func(io.Writer) io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		return zerolog.Nop()
	}
	wrapped := make([]io.Writer, len(writers))
	for i, w := range writers {
		wrapped[i] = wrap(w)
	}
	return zerolog.New(zerolog.MultiLevelWriter(wrapped...)).Level(level)
}

// emit builds the messages for a log event and sends them to every logger.
func (l *Logger) emit(level zerolog.Level, args ...any) {
	colorMsg, plainMsg, err, info := buildMsgs(args...)
	withStack := level == zerolog.PanicLevel || l.level <= zerolog.DebugLevel

	structured := l.structuredLogger.WithLevel(level)
	unstructured := l.unstructuredLogger.WithLevel(level)
	colored := l.unstructuredColorLogger.WithLevel(level)

	for _, event := range []*zerolog.Event{structured, unstructured, colored} {
		event.Err(err)
		if withStack && err != nil {
			event.Stack()
		}
		if info != nil {
			event.Any("info", info)
		}
	}

	// Send the panic-level event to the writers before panicking ourselves, since WithLevel does not panic.
	structured.Msg(plainMsg)
	unstructured.Msg(plainMsg)
	colored.Msg(colorMsg)

	if level == zerolog.PanicLevel {
		panic(plainMsg)
	}
}

// buildMsgs describes a function that takes in a variadic list of arguments of any type and returns two strings and,
// optionally, an error and a StructuredLogInfo object. The first string will be a colorized-string that can be used for
// console logging while the second string will be a non-colorized one that can be used for file/structured logging.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	consoleOutput := make([]string, 0)
	fileOutput := make([]string, 0)
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			// If the argument is a color function, switch the current color context
			colorCtx = t
		case StructuredLogInfo:
			// Note that only one structured log info can be provided for each log message
			info = t
		case error:
			// Note that only one error can be provided for each log message
			err = t
		default:
			consoleOutput = append(consoleOutput, colorCtx(t))
			fileOutput = append(fileOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(consoleOutput, ""), strings.Join(fileOutput, ""), err, info
}

// setupDefaultFormatting will update a console writer's formatting to the single-pyo3 standard
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Get rid of the timestamp for console output
	writer.FormatTimestamp = func(i interface{}) string {
		return ""
	}

	// We will define a custom format for each level
	writer.FormatLevel = func(i any) string {
		levelStr, _ := i.(string)
		parsed, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return levelStr
		}

		switch parsed {
		case zerolog.TraceLevel:
			return colors.CyanBold(zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return colors.BlueBold(zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return colors.GreenBold(colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return colors.YellowBold(zerolog.LevelWarnValue)
		case zerolog.ErrorLevel:
			return colors.RedBold(zerolog.LevelErrorValue)
		case zerolog.FatalLevel:
			return colors.RedBold(zerolog.LevelFatalValue)
		case zerolog.PanicLevel:
			return colors.RedBold(zerolog.LevelPanicValue)
		default:
			return levelStr
		}
	}

	// If we are above debug level, we want to get rid of the `module` component when logging to console
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module"}
	}

	return writer
}
