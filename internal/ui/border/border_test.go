package border

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestKeybindWidth(t *testing.T) {
	if w := KeybindWidth(Keybind{Key: "a", Label: "cquire"}); w != 9 {
		t.Errorf("KeybindWidth: got %d, want 9", w)
	}
	if w := KeybindWidth(Keybind{Key: "Esc", Label: " close"}); w != 11 {
		t.Errorf("KeybindWidth multi-char: got %d, want 11", w)
	}
	got := RenderKeybind(Keybind{Key: "a", Label: "cquire"})
	if !strings.Contains(got, "[a]") || !strings.Contains(got, "cquire") {
		t.Errorf("RenderKeybind: got %q", got)
	}
}

func TestFitKeybindsDropsOverflow(t *testing.T) {
	kbs := []Keybind{{Key: "a", Label: "cquire"}, {Key: "d", Label: "elete"}, {Key: "s", Label: "can"}}
	got := FitKeybinds(kbs, 20)
	if lipgloss.Width(got) > 20 {
		t.Errorf("FitKeybinds exceeded width: %d", lipgloss.Width(got))
	}
	if !strings.Contains(got, "cquire") || !strings.Contains(got, "elete") {
		t.Errorf("expected first two keybinds, got %q", got)
	}
	if strings.Contains(got, "can") {
		t.Errorf("expected third keybind dropped, got %q", got)
	}
}

func TestRenderTopWidths(t *testing.T) {
	tests := []struct {
		title, badge string
		width        int
	}{
		{"", "", 20},
		{"Log", "", 30},
		{"Log", "open", 30},
		{"A very long panel title", "badge", 16},
	}
	for _, tt := range tests {
		got := RenderTop(tt.title, tt.badge, tt.width, true)
		if w := lipgloss.Width(got); w != tt.width {
			t.Errorf("RenderTop(%q, %q, %d): width %d", tt.title, tt.badge, tt.width, w)
		}
	}
}

func TestRenderTopBadge(t *testing.T) {
	got := RenderTop("Log", "connecting", 40, false)
	if !strings.Contains(got, "Log") || !strings.Contains(got, "connecting") {
		t.Errorf("expected title and badge, got %q", got)
	}
	if !strings.HasPrefix(stripped(got), "╭─ Log ") || !strings.HasSuffix(stripped(got), " connecting ─╮") {
		t.Errorf("unexpected layout %q", stripped(got))
	}
}

func TestRenderTopDropsBadgeWhenNarrow(t *testing.T) {
	got := RenderTop("Search", "123456789", 16, true)
	if strings.Contains(got, "123456789") {
		t.Errorf("expected badge dropped, got %q", got)
	}
}

func TestRenderBottom(t *testing.T) {
	kbs := []Keybind{{Key: "y", Label: "ank"}}
	focused := RenderBottom(kbs, 30, true)
	if !strings.Contains(focused, "ank") {
		t.Error("focused bottom should show keybinds")
	}
	if lipgloss.Width(focused) != 30 {
		t.Errorf("focused bottom width %d", lipgloss.Width(focused))
	}
	unfocused := RenderBottom(kbs, 30, false)
	if strings.Contains(unfocused, "ank") {
		t.Error("unfocused bottom should hide keybinds")
	}
}

func TestFrameFillsHeight(t *testing.T) {
	out := Frame{Title: "T", Width: 20, Height: 6}.Render("one\ntwo")
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 20 {
			t.Errorf("line %d width %d, want 20", i, w)
		}
	}
}

func TestFrameCropsContent(t *testing.T) {
	out := RenderPanel("T", "1\n2\n3\n4\n5", nil, 10, 4, false)
	if strings.Contains(out, "3") {
		t.Errorf("expected content cropped to 2 rows, got %q", out)
	}
}

func TestFrameTooSmall(t *testing.T) {
	if got := (Frame{Width: 1, Height: 5}).Render("x"); got != "" {
		t.Errorf("expected empty for width 1, got %q", got)
	}
}

func stripped(s string) string {
	return ansi.Strip(s)
}
