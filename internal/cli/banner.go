package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	bannerArt = `=======================================================
    ██╗   ██╗████████╗██╗██╗     ███╗   ███╗██████╗
    ██║   ██║╚══██╔══╝██║██║     ████╗ ████║██╔══██╗
    ██║   ██║   ██║   ██║██║     ██╔████╔██║██║  ██║
    ██║   ██║   ██║   ██║██║     ██║╚██╔╝██║██║  ██║
    ╚██████╔╝   ██║   ██║███████╗██║ ╚═╝ ██║██████╔╝
     ╚═════╝    ╚═╝   ╚═╝╚══════╝╚═╝     ╚═╝╚═════╝
=======================================================`
	bannerVersionFormat = "    %s"
)

var (
	bannerArtStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	bannerVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// printBanner writes the styled application banner followed by the version line.
func printBanner(writer io.Writer, version string) {
	fmt.Fprintln(writer, bannerArtStyle.Render(bannerArt))
	fmt.Fprintln(writer, bannerVersionStyle.Render(fmt.Sprintf(bannerVersionFormat, version)))
	fmt.Fprintln(writer)
}
