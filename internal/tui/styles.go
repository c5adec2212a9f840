package tui

import "github.com/rgehrsitz/zusim/internal/tui/tuistyles"

// Re-export styles from tuistyles so components can share them without an import cycle
var (
	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	StatusBarStyle    = tuistyles.StatusBarStyle
	StatusKeyStyle    = tuistyles.StatusKeyStyle
	BorderStyle       = tuistyles.BorderStyle
	ActiveBorderStyle = tuistyles.ActiveBorderStyle
	FieldLabelStyle   = tuistyles.FieldLabelStyle
	FocusedLabelStyle = tuistyles.FocusedLabelStyle
	ErrorStyle        = tuistyles.ErrorStyle
	InfoStyle         = tuistyles.InfoStyle
)

var FormatCurrency = tuistyles.FormatCurrency
