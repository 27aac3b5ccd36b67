// Package perfdata parses monitoring performance-data strings into named
// metric samples.
//
// A performance-data string holds one or more fields of the form
//
//	label=value[unit];warning;critical;min;max
//
// separated by whitespace or newlines. Labels may be single-quoted to carry
// spaces. Parsing is best effort: a malformed field is skipped and the
// remaining fields are still returned.
//
// Sample names are sanitized so they can be used as path segments in
// Graphite targets: every character outside [A-Za-z0-9_] becomes "_", and a
// trailing "_<digits>" instance index collapses into the ".*" wildcard.
package perfdata

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// fieldPattern splits a perf-data string into label=value chunks.
	// The label may span spaces, the value may not.
	fieldPattern = regexp.MustCompile(`[^=]+=\S+`)

	// valuePattern matches the leading value and its unit of measure.
	valuePattern = regexp.MustCompile(`^([\d.\-+eE]+)([\w/%]*)$`)

	unitPattern = regexp.MustCompile(`^[\w/%]*$`)

	illegalChar = regexp.MustCompile(`[^A-Za-z0-9_]`)
	multiValue  = regexp.MustCompile(`_(\d+)$`)
)

// Sample is one parsed performance-data field.
type Sample struct {
	// Label is the label as written in the perf-data string, quotes removed.
	Label string

	// Name is the sanitized label, safe to use in a Graphite target.
	Name string

	// Value is the measured value.
	Value float64

	// Unit is the unit of measure (e.g. "", "%", "MB", "s").
	Unit string

	// Warning and Critical are nil when the threshold is absent or is a
	// range expression that does not reduce to a single number.
	Warning  *float64
	Critical *float64

	// Min and Max are nil when absent.
	Min *float64
	Max *float64
}

// HasThresholds reports whether both the warning and critical thresholds
// are set.
func (s Sample) HasThresholds() bool {
	return s.Warning != nil && s.Critical != nil
}

// Sanitize replaces every character outside [A-Za-z0-9_] with "_".
func Sanitize(s string) string {
	return illegalChar.ReplaceAllString(s, "_")
}

// MetricName sanitizes a perf-data label and turns a trailing instance
// index (e.g. "cpu_3") into a wildcard ("cpu.*").
func MetricName(label string) string {
	return multiValue.ReplaceAllString(Sanitize(label), ".*")
}

// Parse splits a perf-data string into samples, in input order.
// Fields without a parseable value are skipped.
func Parse(perfData string) []Sample {
	var samples []Sample
	for _, chunk := range fieldPattern.FindAllString(perfData, -1) {
		s, ok := parseField(chunk)
		if !ok {
			continue
		}
		samples = append(samples, s)
	}
	return samples
}

// parseField parses a single label=value;warn;crit;min;max chunk.
func parseField(chunk string) (Sample, bool) {
	eq := strings.Index(chunk, "=")
	if eq < 0 {
		return Sample{}, false
	}
	label := strings.Trim(strings.TrimSpace(chunk[:eq]), "'")
	if label == "" {
		return Sample{}, false
	}

	parts := strings.Split(chunk[eq+1:], ";")
	m := valuePattern.FindStringSubmatch(parts[0])
	if m == nil {
		return Sample{}, false
	}
	value, unit, ok := splitValue(m[1], m[2])
	if !ok {
		return Sample{}, false
	}

	s := Sample{
		Label: label,
		Name:  MetricName(label),
		Value: value,
		Unit:  unit,
	}
	s.Warning = optionalFloat(parts, 1)
	s.Critical = optionalFloat(parts, 2)
	s.Min = optionalFloat(parts, 3)
	s.Max = optionalFloat(parts, 4)
	return s, true
}

// splitValue parses the numeric part of a value. valuePattern is greedy, so
// a unit starting with "e" or "E" (as in "10EB") ends up in num; the longest
// parseable prefix is then kept as the number and the rest joins the unit.
func splitValue(num, unit string) (float64, string, bool) {
	for i := len(num); i > 0; i-- {
		v, err := strconv.ParseFloat(num[:i], 64)
		if err != nil {
			continue
		}
		rest := num[i:] + unit
		if !unitPattern.MatchString(rest) {
			return 0, "", false
		}
		return v, rest, true
	}
	return 0, "", false
}

// optionalFloat returns the number at parts[i], or nil if it is missing,
// empty or not a plain number.
func optionalFloat(parts []string, i int) *float64 {
	if i >= len(parts) {
		return nil
	}
	raw := strings.TrimSpace(parts[i])
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
