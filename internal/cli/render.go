package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// Color palette - keeping it minimal and accessible.
var (
	colorPrimary   = lipgloss.Color("39")  // Blue
	colorSecondary = lipgloss.Color("245") // Gray
	colorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// renderServer formats one server as an aligned label/value listing.
// Passwords are never part of the model read back from the wire.
func renderServer(server *azsm.Server) string {
	rows := []struct{ label, value string }{
		{"Name", server.Name},
		{"Resource group", server.ResourceGroup},
		{"Location", server.Location},
		{"Version", server.Version},
		{"Admin user", server.AdminUser},
		{"State", server.State},
		{"FQDN", server.FullyQualifiedDomainName},
	}

	var b strings.Builder
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = mutedStyle.Render("-")
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", row.label+":")), value)
	}
	return b.String()
}

// renderServerList formats servers as a compact table.
func renderServerList(servers []*azsm.Server) string {
	if len(servers) == 0 {
		return mutedStyle.Render("no servers found") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(
		fmt.Sprintf("%-30s %-15s %-8s %s", "NAME", "LOCATION", "VERSION", "STATE")))
	for _, server := range servers {
		fmt.Fprintf(&b, "%-30s %-15s %-8s %s\n",
			server.Name, server.Location, server.Version, server.State)
	}
	return b.String()
}
