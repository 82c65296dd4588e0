package analytics

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/anserk/bookmind/internal/model"
)

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Genre", "Books"},
		[][]string{{"Fiction", "12"}, {"Sci", "3"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if lines[1] != "Fiction    12" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "Sci         3" {
		t.Fatalf("right alignment broken: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
}

func TestRenderGenreBars(t *testing.T) {
	stats := BuildGenreStats(map[string]int{"Fiction": 3, "Mystery": 1})
	var buf bytes.Buffer
	if err := RenderGenreBars(&buf, stats, 60); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 bar rows, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "Fiction") || !strings.Contains(lines[0], "75.0%") {
		t.Fatalf("unexpected top row: %q", lines[0])
	}
	if !strings.Contains(lines[0], "█") || !strings.Contains(lines[1], "░") {
		t.Fatalf("expected bar glyphs: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("buffer output should not be colored: %q", out)
	}
}

func TestRenderGenreBarsNarrowWidth(t *testing.T) {
	stats := BuildGenreStats(map[string]int{"Science Fiction": 1})
	var buf bytes.Buffer
	if err := RenderGenreBars(&buf, stats, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), strings.Repeat("█", minBarWidth)) {
		t.Fatalf("bar should keep its minimum width: %q", buf.String())
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Report{Metrics: ComputeMetrics(nil)}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No books yet") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderSummary(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	books := []model.Book{readBook("Fiction", 320, "2026-08-29")}
	books[0].Rating = 4
	r := Derive(books, model.Settings{MonthlyGoal: 2}, now)

	var buf bytes.Buffer
	if err := RenderSummary(&buf, r); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Books: 1", "Pages read: 320", "4.0/5", "1/2 this month"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestRenderBadgesMarkers(t *testing.T) {
	var buf bytes.Buffer
	badges := []model.Badge{
		{ID: "a", Icon: "📖", Label: "First Book", Earned: true},
		{ID: "b", Icon: "🔥", Label: "5 Books"},
	}
	if err := RenderBadges(&buf, badges); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[x] 📖 First Book") || !strings.Contains(out, "[ ] 🔥 5 Books") {
		t.Fatalf("unexpected markers: %q", out)
	}
}

func TestRenderInsightsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderInsights(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to say yet") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderAnalyst(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	books := []model.Book{readBook("Mystery", 300, "2026-08-29")}
	r := Derive(books, model.Settings{}, now)

	var buf bytes.Buffer
	tip := Tip(rand.New(rand.NewSource(2)))
	if err := RenderAnalyst(&buf, r, tip); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Mystery Sleuth") {
		t.Fatalf("missing persona: %q", out)
	}
	if !strings.Contains(out, "Because you read Mystery:") {
		t.Fatalf("missing shelf: %q", out)
	}
	if !strings.Contains(out, "Tip:") {
		t.Fatalf("missing tip: %q", out)
	}
}
