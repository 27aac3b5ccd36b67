// Package webui is the console-facing side of the Graphite graph module.
//
// The monitoring web console loads UI modules by type name through a
// Registry, passing the raw options of the module definition. A loaded
// module gives the console a link to the Graphite web UI and, for any host
// or service, the list of graph images to display.
package webui

import (
	"fmt"
	"time"

	"github.com/kylerisse/graphiteui/pkg/config"
	"github.com/kylerisse/graphiteui/pkg/entity"
	"github.com/kylerisse/graphiteui/pkg/graphite"
)

// TypeName is the module type the console registers this module under.
const TypeName = "graphite_webui"

// ModuleProperties describes where a module runs and what it is.
type ModuleProperties struct {
	Daemons []string
	Type    string
}

// Properties of the Graphite web UI module.
var Properties = ModuleProperties{
	Daemons: []string{"webui"},
	Type:    TypeName,
}

// Link is an entry for the console's external UI menu.
type Link struct {
	Label string `json:"label"`
	URI   string `json:"uri"`
}

// UI is what the console needs from a graph module.
type UI interface {
	// ExternalUILink returns the link to the graphing backend's own UI.
	ExternalUILink() Link

	// GraphURIs returns the graphs of e between start and end.
	GraphURIs(e entity.Entity, start, end time.Time, source graphite.Source, size graphite.Size) ([]graphite.Descriptor, error)
}

// Module is the Graphite web UI module.
type Module struct {
	cfg     config.Config
	builder *graphite.Builder
}

// New creates a Module from a validated configuration.
func New(cfg *config.Config, opts ...graphite.Option) (*Module, error) {
	if cfg == nil {
		return nil, config.ErrMissingURI
	}
	b, err := graphite.NewBuilder(*cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{cfg: *cfg, builder: b}, nil
}

// Factory creates a Module from the raw module options.
// See config.FromMap for the recognized keys.
func Factory(options map[string]any) (UI, error) {
	cfg, err := config.FromMap(options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TypeName, err)
	}
	m, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TypeName, err)
	}
	return m, nil
}

// ExternalUILink returns the Graphite web UI link.
func (m *Module) ExternalUILink() Link {
	return Link{Label: "Graphite", URI: m.cfg.URI}
}

// GraphURIs returns the graphs of e between start and end.
func (m *Module) GraphURIs(e entity.Entity, start, end time.Time, source graphite.Source, size graphite.Size) ([]graphite.Descriptor, error) {
	return m.builder.GraphURIs(e, start, end, source, size)
}

// Config returns a copy of the module configuration.
func (m *Module) Config() config.Config {
	return m.cfg
}
