package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"robotidy/internal/transform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in transformers",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
		nameStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
		descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		fmt.Fprintln(out, titleStyle.Render("Transformers (in run order):"))
		for _, t := range transform.Defaults() {
			fmt.Fprintf(out, "  %s\n", nameStyle.Render(t.Name()))
			fmt.Fprintf(out, "      %s\n", descStyle.Render(t.Description()))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, descStyle.Render(`disable any of them per file with "# robotidy: off=Name"`))
	},
}
