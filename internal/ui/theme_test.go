package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	for _, name := range names {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
}

func TestGetTheme_UnknownFallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Solarized").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown) = %q, want Nightfox", got)
	}
	if got := GetTheme("").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(empty) = %q, want Nightfox", got)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestThemeCard_WrapsContentInBorder(t *testing.T) {
	out := GetTheme("Slate").Card(20).Render("hi")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("card has %d lines, want 3: %q", len(lines), out)
	}
	if w := lipgloss.Width(lines[0]); w != 22 {
		t.Fatalf("card width = %d, want 22", w)
	}
}

func TestBgStyle_Render(t *testing.T) {
	bg := NewBgStyle("#000000")
	if got := bg.Render("", lipgloss.NewStyle()); got != "" {
		t.Fatalf("Render(empty) = %q, want empty", got)
	}
	got := bg.Render("two words", lipgloss.NewStyle())
	if w := lipgloss.Width(got); w != len("two words") {
		t.Fatalf("Render width = %d, want %d", w, len("two words"))
	}
}
