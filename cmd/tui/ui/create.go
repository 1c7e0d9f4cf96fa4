package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jfuentes/recipebox/cmd/tui/client"
	"github.com/jfuentes/recipebox/internal/models"
)

type createRecipeSuccessMsg struct {
	title string
}

type createRecipeErrorMsg struct {
	err error
}

type CreateModel struct {
	titleInput   string
	timeInput    string
	priceInput   string
	tagsInput    string
	focusedInput int
	loading      bool
	result       string
	err          error
	client       *client.Client
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func NewCreateModel() *CreateModel {
	return &CreateModel{
		focusedInput: 0,
	}
}

func (m *CreateModel) SetClient(c *client.Client) {
	m.client = c
}

func splitTagNames(input string) []string {
	parts := strings.Split(input, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func createRecipeCmd(c *client.Client, title string, timeMinutes int, price float64, tagNames []string) tea.Cmd {
	return func() tea.Msg {
		tagIDs, err := c.ResolveTagNames(tagNames)
		if err != nil {
			return createRecipeErrorMsg{err: err}
		}

		recipe, err := c.CreateRecipe(&models.CreateRecipeRequest{
			Title:       title,
			TimeMinutes: timeMinutes,
			Price:       price,
			TagIDs:      tagIDs,
		})
		if err != nil {
			return createRecipeErrorMsg{err: err}
		}

		return createRecipeSuccessMsg{title: recipe.Title}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createRecipeSuccessMsg:
		m.loading = false
		m.result = msg.title
		m.err = nil
		return m, nil

	case createRecipeErrorMsg:
		m.loading = false
		m.err = msg.err
		m.result = ""
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % 4
		case "shift+tab":
			m.focusedInput = (m.focusedInput + 3) % 4
		case "enter":
			if strings.TrimSpace(m.titleInput) == "" {
				m.err = fmt.Errorf("title cannot be empty")
				return m, nil
			}

			timeMinutes := 0
			if m.timeInput != "" {
				parsed, err := strconv.Atoi(m.timeInput)
				if err != nil || parsed < 0 {
					m.err = fmt.Errorf("time must be a whole number of minutes")
					return m, nil
				}
				timeMinutes = parsed
			}

			price := 0.0
			if m.priceInput != "" {
				parsed, err := strconv.ParseFloat(m.priceInput, 64)
				if err != nil || parsed < 0 {
					m.err = fmt.Errorf("price must be a number")
					return m, nil
				}
				price = parsed
			}

			if m.client != nil {
				m.loading = true
				m.err = nil
				m.result = ""
				return m, createRecipeCmd(m.client, m.titleInput, timeMinutes, price, splitTagNames(m.tagsInput))
			} else {
				m.err = fmt.Errorf("client not connected")
			}
		case "backspace":
			switch m.focusedInput {
			case 0:
				if len(m.titleInput) > 0 {
					m.titleInput = m.titleInput[:len(m.titleInput)-1]
				}
			case 1:
				if len(m.timeInput) > 0 {
					m.timeInput = m.timeInput[:len(m.timeInput)-1]
				}
			case 2:
				if len(m.priceInput) > 0 {
					m.priceInput = m.priceInput[:len(m.priceInput)-1]
				}
			case 3:
				if len(m.tagsInput) > 0 {
					m.tagsInput = m.tagsInput[:len(m.tagsInput)-1]
				}
			}
		case "ctrl+l":
			m.titleInput = ""
			m.timeInput = ""
			m.priceInput = ""
			m.tagsInput = ""
			m.result = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				switch m.focusedInput {
				case 0:
					m.titleInput += msg.String()
				case 1:
					m.timeInput += msg.String()
				case 2:
					m.priceInput += msg.String()
				case 3:
					m.tagsInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *CreateModel) inputStyle(index int) lipgloss.Style {
	if m.focusedInput == index {
		return FocusedInputStyle
	}
	return InputStyle
}

func (m *CreateModel) View() string {
	var b strings.Builder

	icon := lipgloss.NewStyle().Foreground(Accent).Render("🍳")
	header := icon + " " + TitleStyle.Render("ADD RECIPE") + " " + icon
	b.WriteString(lipgloss.NewStyle().
		Width(100).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
		hint  string
	}{
		{"Title:", m.titleInput, ""},
		{"Time (min):", m.timeInput, ""},
		{"Price:", m.priceInput, ""},
		{"Tags:", m.tagsInput, " (comma separated)"},
	}

	for i, field := range fields {
		label := LabelStyle.Render(field.label)
		value := m.inputStyle(i).Width(60).Render(field.value)
		row := lipgloss.JoinHorizontal(lipgloss.Left, label, value)
		if field.hint != "" {
			row = lipgloss.JoinHorizontal(lipgloss.Left, row, InfoStyle.Render(field.hint))
		}
		b.WriteString(lipgloss.NewStyle().Width(100).Align(lipgloss.Center).Render(row))
		b.WriteString("\n\n")
	}

	if m.loading {
		loading := InfoStyle.Render("Saving recipe...")
		b.WriteString(lipgloss.NewStyle().Width(100).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.result != "" {
		result := SuccessStyle.Render("✓ Saved: ") + ValueStyle.Render(m.result)
		b.WriteString(lipgloss.NewStyle().Width(100).Align(lipgloss.Center).Render(result))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("Error: " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(100).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	help := InfoStyle.Render("tab switch  •  enter save  •  ctrl+l clear  •  q back")
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(100).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(96).Render(b.String())
}
