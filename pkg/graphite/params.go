package graphite

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the Graphite from/until format (HH:MM_YYYYMMDD).
const TimeFormat = "15:04_20060102"

var (
	fontSizeParam = regexp.MustCompile(`([?&]fontSize=)[^&]*`)
	widthParam    = regexp.MustCompile(`([?&]width=)[^&]*`)
	heightParam   = regexp.MustCompile(`([?&]height=)[^&]*`)
)

// FormatTime renders t in the Graphite from/until format, in t's location.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

// ReplaceFontSize sets the fontSize query parameter of url, appending it
// when absent.
func ReplaceFontSize(url string, size string) string {
	return setParam(url, fontSizeParam, "fontSize", size)
}

// ReplaceGraphSize sets the width and height query parameters of url.
// Each one is replaced if present and appended otherwise.
func ReplaceGraphSize(url string, width, height int) string {
	url = setParam(url, widthParam, "width", strconv.Itoa(width))
	return setParam(url, heightParam, "height", strconv.Itoa(height))
}

// setParam replaces every occurrence of the parameter matched by re, or
// appends "&name=value" when there is none.
func setParam(url string, re *regexp.Regexp, name, value string) string {
	if !re.MatchString(url) {
		return url + "&" + name + "=" + value
	}
	return re.ReplaceAllString(url, "${1}"+strings.ReplaceAll(value, "$", "$$"))
}
