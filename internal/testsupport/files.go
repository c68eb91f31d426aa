package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SeedTune is one playlist row for WriteSeed.
type SeedTune struct {
	ID    string
	Title string
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSeed writes a tab-separated playlist with placeholder columns around
// each id and title.
func WriteSeed(t testing.TB, path string, rows ...SeedTune) {
	t.Helper()

	var sb strings.Builder
	for _, row := range rows {
		fields := []string{"reel", row.Title, "AABB", "D", "|:ABcd efge:|", "", row.ID}
		sb.WriteString(strings.Join(fields, "\t"))
		sb.WriteString("\n")
	}
	WriteFile(t, path, sb.String())
}

// WriteOverrides writes one override set per line.
func WriteOverrides(t testing.TB, path string, lines ...string) {
	t.Helper()
	WriteFile(t, path, strings.Join(lines, "\n")+"\n")
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
