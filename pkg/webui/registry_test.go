package webui

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kylerisse/graphiteui/pkg/entity"
	"github.com/kylerisse/graphiteui/pkg/graphite"
)

// stubUI is a minimal UI implementation for testing.
type stubUI struct {
	label string
}

func (s *stubUI) ExternalUILink() Link { return Link{Label: s.label} }
func (s *stubUI) GraphURIs(entity.Entity, time.Time, time.Time, graphite.Source, graphite.Size) ([]graphite.Descriptor, error) {
	return nil, nil
}

func stubFactory(label string) FactoryFunc {
	return func(options map[string]any) (UI, error) {
		return &stubUI{label: label}, nil
	}
}

func failingFactory(options map[string]any) (UI, error) {
	return nil, fmt.Errorf("factory error")
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("stub", stubFactory("stub")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	ui, err := reg.Create("stub", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ui.ExternalUILink().Label != "stub" {
		t.Errorf("expected label 'stub', got %q", ui.ExternalUILink().Label)
	}
}

func TestRegistry_DuplicateRegister(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("dup", stubFactory("dup")); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := reg.Register("dup", stubFactory("dup")); err == nil {
		t.Error("expected error on duplicate registration")
	}
}

func TestRegistry_NilFactory(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("nil", nil); err == nil {
		t.Error("expected error for nil factory")
	}
}

func TestRegistry_CreateUnknownType(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Create("nonexistent", nil); err == nil {
		t.Error("expected error for unknown module type")
	}
}

func TestRegistry_CreateFactoryError(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("bad", failingFactory); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := reg.Create("bad", nil); err == nil {
		t.Error("expected error from failing factory")
	}
}

func TestRegistry_Types(t *testing.T) {
	reg := NewRegistry()

	reg.Register("graphite_webui", stubFactory("a"))
	reg.Register("pnp_webui", stubFactory("b"))
	reg.Register("influxdb_webui", stubFactory("c"))

	types := reg.Types()
	expected := []string{"graphite_webui", "influxdb_webui", "pnp_webui"}
	if len(types) != len(expected) {
		t.Fatalf("expected %d types, got %d", len(expected), len(types))
	}
	for i, typ := range types {
		if typ != expected[i] {
			t.Errorf("expected type %q at index %d, got %q", expected[i], i, typ)
		}
	}
}

func TestRegistry_OptionsPassthrough(t *testing.T) {
	reg := NewRegistry()

	var received map[string]any
	reg.Register("optiontest", func(options map[string]any) (UI, error) {
		received = options
		return &stubUI{}, nil
	})

	reg.Create("optiontest", map[string]any{"uri": "http://g/"})

	if received == nil {
		t.Fatal("factory did not receive options")
	}
	if received["uri"] != "http://g/" {
		t.Errorf("expected uri 'http://g/', got %v", received["uri"])
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("type-%d", n)
			reg.Register(name, stubFactory(name))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("type-%d", n)
			ui, err := reg.Create(name, nil)
			if err != nil {
				t.Errorf("Create(%q) failed: %v", name, err)
				return
			}
			if ui.ExternalUILink().Label != name {
				t.Errorf("expected label %q, got %q", name, ui.ExternalUILink().Label)
			}
		}(i)
	}
	wg.Wait()

	if types := reg.Types(); len(types) != 50 {
		t.Errorf("expected 50 registered types, got %d", len(types))
	}
}

func TestNewDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry()

	types := reg.Types()
	if len(types) != 1 || types[0] != TypeName {
		t.Fatalf("expected only %q, got %v", TypeName, types)
	}

	if _, err := reg.Create(TypeName, map[string]any{}); err == nil {
		t.Error("expected error when uri is missing")
	}
}
