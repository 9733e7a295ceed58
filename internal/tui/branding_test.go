package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/dentalink/dentalink/internal/config"
)

func TestShowBanner(t *testing.T) {
	var buf bytes.Buffer
	ShowBanner(&buf, "1.0.0-test")

	out := buf.String()
	assert.Contains(t, out, Tagline)
	assert.Contains(t, out, "v1.0.0-test")
	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "╝")
}

func TestShowBanner_DevVersion(t *testing.T) {
	var buf bytes.Buffer
	ShowBanner(&buf, "dev")
	assert.NotContains(t, buf.String(), "vdev")
}

func TestGetCompactBanner(t *testing.T) {
	out := GetCompactBanner("اضغط a للمقالات")
	assert.Contains(t, out, "اضغط a للمقالات")
	for _, line := range LogoLines {
		assert.Contains(t, out, strings.TrimSpace(line))
	}
}

func TestApplyColors(t *testing.T) {
	prev := PrimaryColor
	t.Cleanup(func() {
		PrimaryColor = prev
		buildStyles()
	})

	ApplyColors(config.UIColors{Primary: "#123456"})
	assert.Equal(t, lipgloss.Color("#123456"), PrimaryColor)

	ApplyColors(config.UIColors{})
	assert.Equal(t, lipgloss.Color("#123456"), PrimaryColor, "empty values keep the current palette")
}
