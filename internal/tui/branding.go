package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dentalink/dentalink/internal/config"
)

const AppName = "dentalink"

// ASCII art logo lines - canonical definition
var LogoLines = []string{
	"█▀▄ █▀▀ █▄ █ ▀█▀ ▄▀▄ █   █ █▄ █ █▄▀",
	"█ █ █▀▀ █ ▀█  █  █▀█ █   █ █ ▀█ █▀▄",
	"▀▀  ▀▀▀ ▀  ▀  ▀  ▀ ▀ ▀▀▀ ▀ ▀  ▀ ▀ ▀",
}

const CompactLogo = `dentalink ›`

const Tagline = "منصة طب الأسنان العربي"

var (
	PrimaryColor   = lipgloss.Color("#005CB9")
	SecondaryColor = lipgloss.Color("#0047A0")
	AccentColor    = lipgloss.Color("#60A5FA")
	TextColor      = lipgloss.Color("#EAEAEA")
	MutedColor     = lipgloss.Color("#94A3B8")
	ErrorColor     = lipgloss.Color("#F87171")
	SuccessColor   = lipgloss.Color("#4ADE80")
	SurfaceColor   = lipgloss.Color("#16213E")
)

// Styled components
var (
	LogoStyle          lipgloss.Style
	TitleStyle         lipgloss.Style
	HeaderStyle        lipgloss.Style
	HelpStyle          lipgloss.Style
	TimeStyle          lipgloss.Style
	CardStyle          lipgloss.Style
	SelectedCardStyle  lipgloss.Style
	CardTitleStyle     lipgloss.Style
	ChipStyle          lipgloss.Style
	SelectedChipStyle  lipgloss.Style
	FocusedChipStyle   lipgloss.Style
	SkeletonStyle      lipgloss.Style
	StatLabelStyle     lipgloss.Style
	StatValueStyle     lipgloss.Style
	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	SeparatorStyle     lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyColors replaces the palette with configured colors. Empty entries
// keep the built-in value.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(PrimaryColor).
		Bold(true).
		Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
	HelpStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
	TimeStyle = lipgloss.NewStyle().Foreground(MutedColor).Faint(true)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Padding(0, 1)

	SelectedCardStyle = CardStyle.BorderForeground(AccentColor)

	CardTitleStyle = lipgloss.NewStyle().Foreground(TextColor).Bold(true)

	ChipStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	SelectedChipStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Bold(true).
		Padding(0, 1)

	FocusedChipStyle = ChipStyle.Underline(true)

	SkeletonStyle = lipgloss.NewStyle().Foreground(SurfaceColor)

	StatValueStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	StatLabelStyle = lipgloss.NewStyle().Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusWarnStyle = lipgloss.NewStyle().Foreground(AccentColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)

	SeparatorStyle = lipgloss.NewStyle().Foreground(MutedColor)
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HeaderStyle.Render(Tagline),
		HelpStyle.Render(message),
	)
}

// ShowBanner prints the logo and version to w.
func ShowBanner(w io.Writer, version string) {
	versionTag := version
	if versionTag != "" && versionTag != "dev" && versionTag[0] != 'v' && versionTag[0] != 'V' {
		versionTag = "v" + versionTag
	}

	lines := make([]string, 0, len(LogoLines)+2)
	for _, line := range LogoLines {
		lines = append(lines, LogoStyle.Render(line))
	}
	lines = append(lines, "", HeaderStyle.Render(fmt.Sprintf("%s %s", Tagline, versionTag)))

	banner := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	fmt.Fprintln(w, banner)
}
