package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readhero/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗ █████╗ ██████╗ ██╗  ██╗███████╗██████╗  ██████╗
 ██╔══██╗██╔════╝██╔══██╗██╔══██╗██║  ██║██╔════╝██╔══██╗██╔═══██╗
 ██████╔╝█████╗  ███████║██║  ██║███████║█████╗  ██████╔╝██║   ██║
 ██╔══██╗██╔══╝  ██╔══██║██║  ██║██╔══██║██╔══╝  ██╔══██╗██║   ██║
 ██║  ██║███████╗██║  ██║██████╔╝██║  ██║███████╗██║  ██║╚██████╔╝
 ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝ ╚═════╝`

// RenderBanner renders the application wordmark.
func RenderBanner(width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Primary).
		Width(width).
		Align(lipgloss.Center).
		Render(bannerArt)
}
