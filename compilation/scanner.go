package compilation

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/single-pyo3/single-pyo3/compilation/types"
)

// CommentPrefix starts every line of the leading comment block that dependency declarations are scanned from.
const CommentPrefix = "//"

// declarationPattern matches `<name> = <specifier>` inside a comment body. The specifier may be empty.
var declarationPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*=\s*(.*?)\s*$`)

// utf8BOM is skipped if a source file starts with it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ScanDependencies extracts dependency declarations from the leading comment block of a source file.
//
// Only the contiguous run of leading lines that are blank or start with CommentPrefix is examined; the first other
// line ends the scan. Comment lines whose body has the form `name = specifier` become declarations, in file order.
// Every other comment line is treated as a remark. Specifiers are not validated and duplicates are kept.
func ScanDependencies(contents []byte) []types.DependencyDeclaration {
	declarations := make([]types.DependencyDeclaration, 0)

	reader := bufio.NewReader(bytes.NewReader(bytes.TrimPrefix(contents, utf8BOM)))

	lineNumber := 0
	for {
		// Lines have no length limit. The reader is in memory, so the only error is io.EOF with the last line.
		rawLine, err := reader.ReadString('\n')
		if rawLine == "" && err != nil {
			break
		}
		lineNumber++
		line := strings.TrimSpace(rawLine)

		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, CommentPrefix) {
			break
		}

		body := strings.TrimSpace(strings.TrimPrefix(line, CommentPrefix))
		match := declarationPattern.FindStringSubmatch(body)
		if match == nil {
			continue
		}

		declarations = append(declarations, types.DependencyDeclaration{
			Name:      match[1],
			Specifier: match[2],
			Line:      lineNumber,
			Raw:       body,
		})
	}

	return declarations
}
