package graphite

import (
	"github.com/kylerisse/graphiteui/pkg/entity"
	"github.com/kylerisse/graphiteui/pkg/perfdata"
)

// Target is the Graphite naming of an entity. All fields are sanitized and
// carry their own "." separators, so they concatenate directly.
type Target struct {
	// Prefix is "<_GRAPHITE_PRE>." or empty.
	Prefix string

	// Host is the sanitized host name.
	Host string

	// DataSource is ".<graphite_data_source>" or empty.
	DataSource string

	// Service is the sanitized service description, empty for hosts.
	Service string

	// Postfix is ".<_GRAPHITE_POST>" or empty. Only services have one.
	Postfix string

	service bool
}

// HostID is the host part of a Graphite path: prefix, host and data source.
func (t Target) HostID() string {
	return t.Prefix + t.Host + t.DataSource
}

// IsHost reports whether the target names a host rather than a service.
func (t Target) IsHost() bool {
	return !t.service
}

// ServiceID is the service part of a Graphite path. Hosts use the
// "__HOST__" marker.
func (t Target) ServiceID() string {
	if t.IsHost() {
		return hostServiceMarker
	}
	return t.Service + t.Postfix
}

// Metric returns the full Graphite path of a metric of this entity.
func (t Target) Metric(name string) string {
	if t.IsHost() {
		return t.HostID() + "." + hostServiceMarker + "." + name
	}
	return t.HostID() + "." + t.Service + "." + name + t.Postfix
}

func (t Target) String() string {
	return t.HostID() + "." + t.ServiceID()
}

// targetFor resolves the naming of e. It returns false for a nil entity or
// a service without a host.
func (b *Builder) targetFor(e entity.Entity) (Target, bool) {
	var t Target
	if b.cfg.DataSource != "" {
		t.DataSource = "." + b.cfg.DataSource
	}

	switch v := e.(type) {
	case *entity.Host:
		if v == nil {
			return Target{}, false
		}
		t.Host = perfdata.Sanitize(v.Name)
		t.Prefix = prefix(v)
	case *entity.Service:
		if v == nil || v.Host == nil {
			return Target{}, false
		}
		t.Host = perfdata.Sanitize(v.Host.Name)
		t.Prefix = prefix(v.Host)
		t.service = true
		t.Service = perfdata.Sanitize(v.Description)
		if post, ok := v.Custom(entity.CustomGraphitePostfix); ok {
			t.Postfix = "." + perfdata.Sanitize(post)
		}
	default:
		return Target{}, false
	}
	return t, true
}

func prefix(h *entity.Host) string {
	if pre, ok := h.Custom(entity.CustomGraphitePrefix); ok {
		return perfdata.Sanitize(pre) + "."
	}
	return ""
}
