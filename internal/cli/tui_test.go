package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m DiagramListModel, keys ...string) (DiagramListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(DiagramListModel)
	}
	return m, cmd
}

func sampleFiles(n int) []diagramFile {
	files := make([]diagramFile, n)
	for i := range files {
		files[i] = diagramFile{Path: string(rune('a'+i)) + ".excalidraw", Size: 100}
	}
	return files
}

func TestDiagramListNavigation(t *testing.T) {
	m := NewDiagramListModel(sampleFiles(3))

	m, _ = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor above top = %d", m.Cursor)
	}
	m, _ = press(m, "down", "j", "down")
	if m.Cursor != 2 {
		t.Errorf("cursor clamped at bottom = %d, want 2", m.Cursor)
	}
	m, _ = press(m, "k")
	if m.Cursor != 1 {
		t.Errorf("cursor after k = %d, want 1", m.Cursor)
	}
	m, _ = press(m, "G")
	if m.Cursor != 2 {
		t.Errorf("cursor after G = %d", m.Cursor)
	}
	m, _ = press(m, "g")
	if m.Cursor != 0 {
		t.Errorf("cursor after g = %d", m.Cursor)
	}
}

func TestDiagramListScrolls(t *testing.T) {
	m := NewDiagramListModel(sampleFiles(10))
	m.Height = 3

	m, _ = press(m, "down", "down", "down", "down")
	if m.Cursor != 4 || m.Offset != 2 {
		t.Errorf("cursor=%d offset=%d, want 4 and 2", m.Cursor, m.Offset)
	}
	m, _ = press(m, "up", "up", "up")
	if m.Cursor != 1 || m.Offset != 1 {
		t.Errorf("cursor=%d offset=%d, want 1 and 1", m.Cursor, m.Offset)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})
	if got := next.(DiagramListModel).Height; got != 5 {
		t.Errorf("height floor = %d, want 5", got)
	}
}

func TestDiagramListSelect(t *testing.T) {
	m := NewDiagramListModel(sampleFiles(3))

	m, cmd := press(m, "down", "enter")
	if m.Selected == nil || m.Selected.Path != "b.excalidraw" {
		t.Fatalf("selected = %+v", m.Selected)
	}
	if cmd == nil {
		t.Fatal("enter should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter should return tea.Quit")
	}
}

func TestDiagramListQuitWithoutSelection(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, cmd := press(NewDiagramListModel(sampleFiles(2)), k)
		if m.Selected != nil {
			t.Errorf("%s: selected = %+v", k, m.Selected)
		}
		if cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestDiagramListView(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewDiagramListModel([]diagramFile{
		{Path: "flows/login.excalidraw", Size: 2048, ModTime: now.Add(-2 * time.Hour)},
		{Path: "arch.excalidraw", Size: 10, ModTime: now.Add(-30 * time.Second)},
	})
	m.now = func() time.Time { return now }

	view := m.View()
	for _, want := range []string{"Select Diagram", "flows/login.excalidraw", "2.0 KB", "2h ago", "just now", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "May 2, 2025"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("formatRelativeTime(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1536:    "1.5 KB",
		3 << 20: "3.0 MB",
	}
	for n, want := range tests {
		if got := formatSize(n); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFindDiagrams(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.excalidraw", "{}")
	writeFile(t, dir, "a/nested.Excalidraw", "{}")
	writeFile(t, dir, ".hidden/skip.excalidraw", "{}")
	writeFile(t, dir, "notes.md", "# notes")

	files, err := findDiagrams(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"a/nested.Excalidraw", "b.excalidraw"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("findDiagrams = %v, want %v", got, want)
	}
	if files[1].Size != 2 {
		t.Errorf("size = %d, want 2", files[1].Size)
	}
}

func TestFindDiagramsErrors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "x.excalidraw", "{}")

	if _, err := findDiagrams(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing directory should fail")
	}
	if _, err := findDiagrams(file); err == nil {
		t.Error("file argument should fail")
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatal(err)
	}
}

func TestPickWithoutDiagrams(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "pick", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No .excalidraw files") {
		t.Errorf("output = %q", out)
	}
}
