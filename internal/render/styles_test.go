package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStyles_Colors(t *testing.T) {
	// Use TrueColor to properly test color codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	slower := slowerStyle.Render("Slower")
	if !strings.Contains(slower, "196") { // Lipgloss uses 38;5;196m
		t.Errorf("Expected slower text to contain color 196, got %q", slower)
	}

	faster := fasterStyle.Render("Faster")
	if !strings.Contains(faster, "46") {
		t.Errorf("Expected faster text to contain color 46, got %q", faster)
	}
}

func TestDetectColorProfile_NoColor(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Setenv("NO_COLOR", "1")

	DetectColorProfile()

	out := slowerStyle.Render("plain")
	if out != "plain" {
		t.Errorf("Expected plain output under NO_COLOR, got %q", out)
	}
}
