// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output.
const (
	// ColorPrimary is purple, used for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for subtitles and hints.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorHighlight is blue, used for commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// CmdStyle is for command names and examples.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// hintStyle is for the hint line under an error.
	hintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)
