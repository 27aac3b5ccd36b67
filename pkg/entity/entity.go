// Package entity models the monitored objects the console asks graphs for.
//
// An Entity is either a *Host or a *Service. Consumers dispatch with a type
// switch; the interface is sealed so no other implementations exist.
package entity

import (
	"strings"
)

const (
	// CustomGraphitePrefix names the custom attribute holding a Graphite
	// path prefix for a host and all of its services.
	CustomGraphitePrefix = "_GRAPHITE_PRE"

	// CustomGraphitePostfix names the custom attribute holding a Graphite
	// path postfix for a service.
	CustomGraphitePostfix = "_GRAPHITE_POST"

	// commandArgSeparator splits a check command name into its arguments.
	commandArgSeparator = "!"
)

// Entity is a monitored host or service.
type Entity interface {
	// PerfData returns the performance data of the last check result.
	PerfData() string

	// Command returns the check command attached to the entity, or nil.
	Command() *Command

	// Custom looks up a custom attribute on the entity itself.
	Custom(key string) (string, bool)

	sealed()
}

// Command is a check command reference as configured on the entity,
// e.g. "check_nrpe!check_load!-w 5".
type Command struct {
	Name string
}

// Segments splits the command name on "!".
func (c *Command) Segments() []string {
	if c == nil {
		return nil
	}
	return strings.Split(c.Name, commandArgSeparator)
}

// Base returns the command name without its arguments.
func (c *Command) Base() string {
	segs := c.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

// Host is a monitored host.
type Host struct {
	Name         string
	Perf         string
	CheckCommand *Command
	Customs      map[string]string
}

// PerfData returns the host's performance data.
func (h *Host) PerfData() string { return h.Perf }

// Command returns the host's check command.
func (h *Host) Command() *Command { return h.CheckCommand }

// Custom looks up a custom attribute on the host.
func (h *Host) Custom(key string) (string, bool) {
	return lookup(h.Customs, key)
}

func (h *Host) sealed() {}

// Service is a monitored service attached to a host.
type Service struct {
	Description  string
	Host         *Host
	Perf         string
	CheckCommand *Command
	Customs      map[string]string
}

// PerfData returns the service's performance data.
func (s *Service) PerfData() string { return s.Perf }

// Command returns the service's check command.
func (s *Service) Command() *Command { return s.CheckCommand }

// Custom looks up a custom attribute on the service. Attributes of the
// owning host are not consulted.
func (s *Service) Custom(key string) (string, bool) {
	return lookup(s.Customs, key)
}

func (s *Service) sealed() {}

func lookup(customs map[string]string, key string) (string, bool) {
	v, ok := customs[key]
	return v, ok
}
