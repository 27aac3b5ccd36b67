package graphite

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Template placeholder names.
const (
	PlaceholderHost    = "host"
	PlaceholderService = "service"
	PlaceholderURI     = "uri"
)

// hostServiceMarker fills the service placeholder when graphing a host.
const hostServiceMarker = "__HOST__"

// placeholder matches "$$", "$name", "${name}" and a lone "$".
var placeholder = regexp.MustCompile(`(?i)\$(?:(\$)|([_a-z][_a-z0-9]*)|\{([_a-z][_a-z0-9]*)\}|())`)

// RenderTemplate substitutes $name and ${name} placeholders in text with
// values. "$$" yields a literal "$". A placeholder with no value, or a "$"
// that does not start a valid placeholder, is an error.
func RenderTemplate(text string, values map[string]string) (string, error) {
	var b strings.Builder
	last := 0

	for _, m := range placeholder.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[last:m[0]])
		last = m[1]

		switch {
		case m[2] >= 0:
			b.WriteByte('$')
		case m[4] >= 0 || m[6] >= 0:
			name := submatch(text, m, 2)
			if name == "" {
				name = submatch(text, m, 3)
			}
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("graphite: template placeholder $%s has no value", name)
			}
			b.WriteString(v)
		default:
			line, col := position(text, m[0])
			return "", fmt.Errorf("graphite: invalid placeholder in template: line %d, col %d", line, col)
		}
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

func submatch(text string, m []int, group int) string {
	if m[2*group] < 0 {
		return ""
	}
	return text[m[2*group]:m[2*group+1]]
}

// position returns the 1-based line and column of offset in text.
func position(text string, offset int) (int, int) {
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}

// findTemplate returns the first existing template file for the command
// segments under dir, or "" if there is none.
//
// Candidates, in order:
//
//	<dir>/<source>/<cmd>.graph
//	<dir>/<source>/<cmd>_<arg1>.graph   (only when the command has an argument)
//	<dir>/<name>                        (name is the last candidate's file name)
func findTemplate(dir string, source Source, segments []string, tried func(path string, found bool)) string {
	if len(segments) == 0 || segments[0] == "" {
		return ""
	}

	filename := segments[0] + ".graph"
	candidates := []string{filepath.Join(dir, string(source), filename)}
	if len(segments) > 1 {
		filename = segments[0] + "_" + segments[1] + ".graph"
		candidates = append(candidates, filepath.Join(dir, string(source), filename))
	}
	candidates = append(candidates, filepath.Join(dir, filename))

	for _, path := range candidates {
		found := isFile(path)
		if tried != nil {
			tried(path, found)
		}
		if found {
			return path
		}
	}
	return ""
}

// loadTemplate reads a template file.
func loadTemplate(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("graphite: failed to read template %s: %w", path, err)
	}
	return string(raw), nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
