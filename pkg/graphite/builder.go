// Package graphite builds Graphite graph links for monitored hosts and
// services.
//
// For each request the Builder first looks for a graph template matching
// the entity's check command. A template is a text file whose non-empty
// lines are Graphite render URLs with $host, $service and $uri
// placeholders. When no template exists, one render URL per metric found in
// the entity's performance data is generated instead. Every URL finally gets
// its fontSize, width and height parameters set.
package graphite

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kylerisse/graphiteui/pkg/config"
	"github.com/kylerisse/graphiteui/pkg/entity"
	"github.com/kylerisse/graphiteui/pkg/perfdata"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Source is the console view a graph is rendered for.
type Source string

const (
	SourceDetail    Source = "detail"
	SourceDashboard Source = "dashboard"
)

// fontSizes maps each source to its default Graphite fontSize.
var fontSizes = map[Source]string{
	SourceDetail:    "8",
	SourceDashboard: "18",
}

// Default graph dimensions in pixels.
const (
	DefaultWidth  = 586
	DefaultHeight = 308
)

// ErrUnknownSource is returned for a source other than detail or dashboard.
var ErrUnknownSource = errors.New("graphite: unknown source")

// Size is the requested graph size. Zero fields fall back to the defaults.
type Size struct {
	Width  int
	Height int

	// FontSizes overrides the Graphite fontSize per source. Sources that are
	// missing or mapped to "" keep the default.
	FontSizes map[Source]string
}

func (s Size) withDefaults() Size {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	merged := make(map[Source]string, len(fontSizes))
	for source, size := range fontSizes {
		merged[source] = size
		if override := s.FontSizes[source]; override != "" {
			merged[source] = override
		}
	}
	s.FontSizes = merged
	return s
}

// Descriptor is one graph handed to the console.
type Descriptor struct {
	// Link points at the Graphite web UI.
	Link string `json:"link"`

	// ImgSrc is the Graphite render URL of the graph image.
	ImgSrc string `json:"img_src"`
}

// Builder turns entities into graph descriptors. It is safe for
// concurrent use.
type Builder struct {
	cfg     config.Config
	logger  *logrus.Logger
	metrics *Metrics

	// dirWarning throttles the missing templates directory warning.
	dirWarning *rate.Sometimes
}

// Option is a functional option for configuring a Builder.
type Option func(*Builder) error

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		b.logger = logger
		return nil
	}
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(b *Builder) error {
		b.metrics = m
		return nil
	}
}

// NewBuilder creates a Builder. cfg is copied and never modified.
func NewBuilder(cfg config.Config, opts ...Option) (*Builder, error) {
	if cfg.URI == "" {
		return nil, config.ErrMissingURI
	}

	b := &Builder{
		cfg:        cfg,
		logger:     logrus.StandardLogger(),
		dirWarning: &rate.Sometimes{Interval: 10 * time.Minute},
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("graphite: %w", err)
		}
	}

	return b, nil
}

// GraphURIs returns the graphs of e between start and end.
//
// A nil entity, a service without a host, or an entity with no usable
// perf data yields an empty result and no error. An error is returned for
// an unknown source, or when a template file exists but cannot be read or
// rendered.
func (b *Builder) GraphURIs(e entity.Entity, start, end time.Time, source Source, size Size) ([]Descriptor, error) {
	if _, ok := fontSizes[source]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, source)
	}
	size = size.withDefaults()
	fontSize := size.FontSizes[source]

	target, ok := b.targetFor(e)
	if !ok {
		b.logger.Debugf("No graphable entity given (%T), returning no graph.", e)
		b.metrics.empty("entity")
		return []Descriptor{}, nil
	}

	from, until := FormatTime(start), FormatTime(end)

	var urls []string
	var path string
	if tpl := b.lookupTemplate(e, source); tpl != "" {
		var err error
		urls, err = b.templateURLs(tpl, target, from, until)
		if err != nil {
			return nil, err
		}
		path = pathTemplate
	} else {
		urls = b.directURLs(e, target, from, until)
		path = pathDirect
	}

	graphs := make([]Descriptor, 0, len(urls))
	for _, u := range urls {
		u = ReplaceFontSize(u, fontSize)
		u = ReplaceGraphSize(u, size.Width, size.Height)
		graphs = append(graphs, Descriptor{Link: b.cfg.URI, ImgSrc: u})
	}

	if len(graphs) == 0 {
		b.metrics.empty("no_metrics")
	}
	b.metrics.addGraphs(path, len(graphs))
	b.logger.Debugf("Built %d %s graph(s) for %s.", len(graphs), path, target)
	return graphs, nil
}

// lookupTemplate returns the template file for e's check command, or "".
func (b *Builder) lookupTemplate(e entity.Entity, source Source) string {
	if _, err := os.Stat(b.cfg.TemplatesPath); err != nil {
		b.dirWarning.Do(func() {
			b.logger.Warnf("Graph templates directory %s is not usable: %v", b.cfg.TemplatesPath, err)
		})
		b.metrics.lookup(false)
		return ""
	}

	path := findTemplate(b.cfg.TemplatesPath, source, e.Command().Segments(), func(path string, found bool) {
		b.logger.Debugf("Template candidate %s (found: %v)", path, found)
	})
	b.metrics.lookup(path != "")
	return path
}

// templateURLs renders the template at path into one URL per non-empty line.
func (b *Builder) templateURLs(path string, target Target, from, until string) ([]string, error) {
	text, err := loadTemplate(path)
	if err != nil {
		return nil, err
	}

	rendered, err := RenderTemplate(text, map[string]string{
		PlaceholderHost:    target.HostID(),
		PlaceholderService: target.ServiceID(),
		PlaceholderURI:     b.cfg.URI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (template %s)", err, path)
	}

	var urls []string
	for _, line := range strings.Split(rendered, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		img := strings.ReplaceAll(line, `"`, "'")
		urls = append(urls, img+"&from="+from+"&until="+until)
	}
	return urls, nil
}

// directURLs builds one render URL per measured metric in e's perf data.
// Each URL carries the same target clause twice.
func (b *Builder) directURLs(e entity.Entity, target Target, from, until string) []string {
	records := perfdata.Extract(e.PerfData(), b.logger)
	if len(records) == 0 {
		return nil
	}

	var urls []string
	for _, r := range records {
		if r.IsThreshold() {
			continue
		}
		uri := b.cfg.URI + "render/?lineMode=connected&from=" + from + "&until=" + until
		if r.Unit == "%" {
			uri += "&yMin=0&yMax=100"
		}
		clause := "&target=" + target.Metric(r.Name)
		urls = append(urls, uri+clause+clause)
	}
	return urls
}
