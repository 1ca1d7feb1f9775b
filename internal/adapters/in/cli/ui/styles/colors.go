// Package styles holds the terminal palette and composed lipgloss styles of
// the ocicomp CLI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Teal400   = lipgloss.Color("#2dd4bf")
	Teal600   = lipgloss.Color("#0d9488")
	Sky400    = lipgloss.Color("#38bdf8")
	Amber400  = lipgloss.Color("#fbbf24")
	Rose500   = lipgloss.Color("#f43f5e")
	Slate300  = lipgloss.Color("#cbd5e1")
	Slate500  = lipgloss.Color("#64748b")
	Slate700  = lipgloss.Color("#334155")
	PureWhite = lipgloss.Color("#ffffff")
)

// Semantic colors.
var (
	ColorPrimary   = Teal400
	ColorSecondary = Sky400
	ColorSuccess   = Teal400
	ColorWarning   = Amber400
	ColorError     = Rose500
	ColorInfo      = Sky400

	ColorText       = Slate300
	ColorTextMuted  = Slate500
	ColorTextBright = PureWhite
	ColorBorder     = Slate700
)
