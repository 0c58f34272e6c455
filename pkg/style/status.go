package style

import "github.com/pterm/pterm"

// Status types for activation runs
type Status string

const (
	StatusSuccess Status = "success" // artifact synchronized
	StatusSkipped Status = "skipped" // no foreign mount on this host
	StatusPreview Status = "preview" // dry run, nothing written
	StatusError   Status = "error"   // activation aborted
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusPreview:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Badge renders the bracketed status tag shown before result lines.
func Badge(status Status) string {
	return StatusStyle(status).Sprintf("[%s]", string(status))
}
