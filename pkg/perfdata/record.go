package perfdata

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// WarnSuffix is appended to a metric name for its warning threshold record.
	WarnSuffix = "_warn"

	// CritSuffix is appended to a metric name for its critical threshold record.
	CritSuffix = "_crit"
)

// RecordKind tells a measured value apart from the thresholds derived from it.
type RecordKind int

const (
	// KindValue is the measured value of a field.
	KindValue RecordKind = iota

	// KindWarning is the warning threshold of a field.
	KindWarning

	// KindCritical is the critical threshold of a field.
	KindCritical
)

// Record is a single (name, value) pair extracted from perf data.
type Record struct {
	// Name is the sanitized metric name. Threshold records carry the
	// WarnSuffix or CritSuffix.
	Name string

	Value float64

	// Unit is only set on KindValue records.
	Unit string

	Kind RecordKind
}

// IsThreshold reports whether the record name carries a threshold suffix.
func (r Record) IsThreshold() bool {
	return hasThresholdSuffix(r.Name)
}

func hasThresholdSuffix(name string) bool {
	return strings.HasSuffix(name, WarnSuffix) || strings.HasSuffix(name, CritSuffix)
}

// Extract parses perfData and flattens it into records. Each parsed field
// yields its value record, followed by a warning and a critical record when
// both thresholds are present. Records keep the input order.
func Extract(perfData string, logger *logrus.Logger) []Record {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var records []Record
	for _, s := range Parse(perfData) {
		logger.Debugf("Parsed perf data field %q: value=%v unit=%q", s.Label, s.Value, s.Unit)

		records = append(records, Record{Name: s.Name, Value: s.Value, Unit: s.Unit, Kind: KindValue})
		if s.HasThresholds() {
			records = append(records,
				Record{Name: s.Name + WarnSuffix, Value: *s.Warning, Kind: KindWarning},
				Record{Name: s.Name + CritSuffix, Value: *s.Critical, Kind: KindCritical},
			)
		}
		logger.Debugf("Extracted metric %s (thresholds: %v)", s.Name, s.HasThresholds())
	}
	return records
}
