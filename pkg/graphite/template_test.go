package graphite

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	values := map[string]string{
		"host":    "prod.web01",
		"service": "Load",
		"uri":     "http://g/",
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "no placeholders", "no placeholders"},
		{"simple", "$uri/render?target=$host.$service.load1", "http://g//render?target=prod.web01.Load.load1"},
		{"braced", "${uri}render?target=${host}_x", "http://g/render?target=prod.web01_x"},
		{"escaped dollar", "cost=$$5 $host", "cost=$5 prod.web01"},
		{"multi line", "$host\n\n$service\n", "prod.web01\n\nLoad\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderTemplate(tt.text, values)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTemplate_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown placeholder", "target=$hostname"},
		{"unknown braced placeholder", "target=${nope}"},
		{"lone dollar", "price $ 5"},
		{"unterminated brace", "target=${host"},
		{"trailing dollar", "target=$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderTemplate(tt.text, map[string]string{"host": "h"}); err == nil {
				t.Errorf("expected error for %q", tt.text)
			}
		})
	}
}

// writeTemplate creates dir/rel with content, creating parents as needed.
func writeTemplate(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestFindTemplate(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		source   Source
		segments []string
		want     string
	}{
		{"nothing", nil, SourceDetail, []string{"check_load"}, ""},
		{"no command", []string{"detail/.graph"}, SourceDetail, nil, ""},
		{"source dir", []string{"detail/check_load.graph"}, SourceDetail, []string{"check_load"}, "detail/check_load.graph"},
		{"dashboard dir", []string{"detail/check_load.graph", "dashboard/check_load.graph"}, SourceDashboard, []string{"check_load"}, "dashboard/check_load.graph"},
		{"root fallback", []string{"check_load.graph"}, SourceDetail, []string{"check_load"}, "check_load.graph"},
		{"source dir wins over root", []string{"check_load.graph", "detail/check_load.graph"}, SourceDetail, []string{"check_load"}, "detail/check_load.graph"},
		{"first segment wins", []string{"detail/check_nrpe.graph", "detail/check_nrpe_check_load.graph"}, SourceDetail, []string{"check_nrpe", "check_load"}, "detail/check_nrpe.graph"},
		{"second segment in source dir", []string{"detail/check_nrpe_check_load.graph"}, SourceDetail, []string{"check_nrpe", "check_load"}, "detail/check_nrpe_check_load.graph"},
		{"second segment at root", []string{"check_nrpe_check_load.graph"}, SourceDetail, []string{"check_nrpe", "check_load", "-w 5"}, "check_nrpe_check_load.graph"},
		{"root first segment skipped when args", []string{"check_nrpe.graph"}, SourceDetail, []string{"check_nrpe", "check_load"}, ""},
		{"directory is not a template", []string{"detail/check_load.graph/keep"}, SourceDetail, []string{"check_load"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeTemplate(t, dir, f, "x")
			}

			var tried []string
			got := findTemplate(dir, tt.source, tt.segments, func(path string, _ bool) {
				tried = append(tried, path)
			})

			want := ""
			if tt.want != "" {
				want = filepath.Join(dir, tt.want)
			}
			if got != want {
				t.Errorf("findTemplate() = %q, want %q (tried %v)", got, want, tried)
			}
		})
	}
}

func TestLoadTemplate_Missing(t *testing.T) {
	if _, err := loadTemplate(filepath.Join(t.TempDir(), "gone.graph")); err == nil {
		t.Error("expected error for missing template")
	}
}
