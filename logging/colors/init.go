package colors

// enabled reports whether Colorize emits ANSI escape codes.
var enabled = true

// init will ensure that ANSI coloring is enabled on Windows and Unix systems. Note that ANSI coloring is enabled by
// default on Unix system and Windows needs specific kernel calls for enablement
func init() {
	EnableColor()
}

// DisableColor turns every ColorFunc into a plain formatter. Used for --no-color and for non-terminal output.
func DisableColor() {
	enabled = false
}

// Enabled returns whether colorized output is currently produced.
func Enabled() bool {
	return enabled
}
