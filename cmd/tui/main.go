package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfuentes/recipebox/cmd/tui/client"
	"github.com/jfuentes/recipebox/cmd/tui/ui"
)

func main() {
	baseURL := os.Getenv("RECIPEBOX_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	apiClient := client.NewClient(baseURL)

	p := tea.NewProgram(
		ui.NewModel(apiClient),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
