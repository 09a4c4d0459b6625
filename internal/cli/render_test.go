package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTable_AlignsAccentedCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Account", "Realized"},
		Rows: [][]string{
			{"Manutenção", "R$ 1.234,50"},
			{"---"},
			{"Rent", "R$ 50,00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width %d, want %d: %q", i, w, want, l)
		}
	}
	if !strings.Contains(out, "Manutenção") {
		t.Error("cell text missing")
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("nil = %q", got)
	}
	got := []rune(RenderSparkline([]float64{0, 50, 100}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Errorf("sparkline = %q", string(got))
	}
}

func TestRenderBar(t *testing.T) {
	bar := RenderBar(50, 100, 10)
	if w := lipgloss.Width(bar); w != 10 {
		t.Errorf("width = %d, want 10", w)
	}
	if strings.Count(bar, "█") != 5 {
		t.Errorf("filled = %d, want 5", strings.Count(bar, "█"))
	}
	if RenderBar(1, 0, 10) == "" || RenderBar(1, 1, 0) != "" {
		t.Error("unexpected zero-scale handling")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		current, total, width int
		want                  []string
		filled                int
	}{
		{1024, 4096, 8, []string{"1.024/4.096 rows", "25,0%"}, 2},
		{4096, 4096, 8, []string{"4.096/4.096 rows", "100,0%"}, 8},
		{9000, 4096, 8, []string{"100,0%"}, 8},
		{0, 10, 4, []string{"0/10 rows", "0,0%"}, 0},
	}
	for _, tt := range tests {
		got := RenderProgressBar(tt.current, tt.total, tt.width)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("RenderProgressBar(%d, %d) = %q, want %q", tt.current, tt.total, got, w)
			}
		}
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("RenderProgressBar(%d, %d) filled %d cells, want %d", tt.current, tt.total, n, tt.filled)
		}
	}

	if got := RenderProgressBar(5, 0, 8); got != "" {
		t.Errorf("zero total = %q, want empty", got)
	}
}
