package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jfuentes/recipebox/cmd/tui/client"
)

type RecipeItem struct {
	ID          string
	Title       string
	TimeMinutes int
	Price       float64
	TagCount    int
	CreatedAt   string
}

type listRecipesSuccessMsg struct {
	recipes []RecipeItem
}

type listRecipesErrorMsg struct {
	err error
}

type deleteRecipeDoneMsg struct{}

type ListModel struct {
	recipes []RecipeItem
	cursor  int
	loading bool
	err     error
	client  *client.Client
	loaded  bool
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func NewListModel() *ListModel {
	return &ListModel{
		recipes: []RecipeItem{},
	}
}

func (m *ListModel) SetClient(c *client.Client) {
	m.client = c
}

func relativeAge(t time.Time) string {
	ago := time.Since(t)
	if ago < time.Hour {
		return fmt.Sprintf("%d min ago", int(ago.Minutes()))
	}
	if ago < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(ago.Hours()))
	}
	return fmt.Sprintf("%d days ago", int(ago.Hours()/24))
}

func listRecipesCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.ListRecipes()
		if err != nil {
			return listRecipesErrorMsg{err: err}
		}

		recipes := make([]RecipeItem, 0, len(resp))
		for _, r := range resp {
			recipes = append(recipes, RecipeItem{
				ID:          r.ID,
				Title:       r.Title,
				TimeMinutes: r.TimeMinutes,
				Price:       r.Price,
				TagCount:    len(r.TagIDs),
				CreatedAt:   relativeAge(r.CreatedAt),
			})
		}

		return listRecipesSuccessMsg{recipes: recipes}
	}
}

func deleteRecipeCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteRecipe(id); err != nil {
			return listRecipesErrorMsg{err: err}
		}
		return deleteRecipeDoneMsg{}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listRecipesSuccessMsg:
		m.loading = false
		m.recipes = msg.recipes
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.recipes) && m.cursor > 0 {
			m.cursor = len(m.recipes) - 1
		}
		return m, nil

	case listRecipesErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case deleteRecipeDoneMsg:
		m.loading = true
		return m, listRecipesCmd(m.client)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.recipes)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listRecipesCmd(m.client)
			}
		case "d":
			if !m.loading && m.cursor < len(m.recipes) {
				m.loading = true
				return m, deleteRecipeCmd(m.client, m.recipes[m.cursor].ID)
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, listRecipesCmd(m.client)
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("MY RECIPES")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	if m.loading {
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading recipes...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if len(m.recipes) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("🍽 No recipes yet. Add one first!")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		for i, recipe := range m.recipes {
			var cardStyle lipgloss.Style
			if i == m.cursor {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Accent).
					Padding(1, 2).
					Width(70).
					MarginBottom(1)
			} else {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Muted).
					Padding(1, 2).
					Width(70).
					MarginBottom(1)
			}

			titleLabel := lipgloss.NewStyle().Foreground(Accent).Bold(true).Render("🍲 ")
			titleValue := lipgloss.NewStyle().Foreground(Success).Render(recipe.Title)
			titleLine := titleLabel + titleValue

			detailLabel := lipgloss.NewStyle().Foreground(Secondary).Render("⏱ ")
			detailValue := lipgloss.NewStyle().Foreground(Text).Render(
				fmt.Sprintf("%d min  •  $%.2f  •  %d tags", recipe.TimeMinutes, recipe.Price, recipe.TagCount))
			detailLine := detailLabel + detailValue

			timeLine := lipgloss.NewStyle().Foreground(Muted).Render("Added " + recipe.CreatedAt)

			cardContent := lipgloss.JoinVertical(lipgloss.Left,
				titleLine,
				detailLine,
				timeLine,
			)

			card := cardStyle.Render(cardContent)
			b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  r refresh  •  d delete  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
