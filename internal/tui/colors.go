package tui

// Color constants for the ttrackr theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Task names, values
	ColorSecondaryText = "#B1B8C7" // Labels, timestamps
	ColorHelpText      = "240"     // Help bar

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Headers, selected row
	ColorAccentBright = "#A78BFA" // Clock digits

	// State Colors
	ColorError   = "#EF4444" // Over allocation, errors
	ColorSuccess = "#22C55E" // Within allocation, done
	ColorWarning = "#F59E0B" // Close to allocation
)
