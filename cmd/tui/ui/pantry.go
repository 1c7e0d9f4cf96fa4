package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jfuentes/recipebox/cmd/tui/client"
)

type pantryLoadedMsg struct {
	tags        []string
	ingredients []string
}

type pantryErrorMsg struct {
	err error
}

type pantryCreatedMsg struct{}

// PantryModel shows the user's tags and ingredients side by side and
// lets them add new ones.
type PantryModel struct {
	tags        []string
	ingredients []string
	nameInput   string
	target      int // 0 = tag, 1 = ingredient
	loading     bool
	err         error
	client      *client.Client
	loaded      bool
}

func (m *PantryModel) Init() tea.Cmd {
	return nil
}

func NewPantryModel() *PantryModel {
	return &PantryModel{}
}

func (m *PantryModel) SetClient(c *client.Client) {
	m.client = c
}

func loadPantryCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		tags, err := c.ListTags()
		if err != nil {
			return pantryErrorMsg{err: err}
		}
		ingredients, err := c.ListIngredients()
		if err != nil {
			return pantryErrorMsg{err: err}
		}

		tagNames := make([]string, 0, len(tags))
		for _, tag := range tags {
			tagNames = append(tagNames, tag.Name)
		}
		ingredientNames := make([]string, 0, len(ingredients))
		for _, ingredient := range ingredients {
			ingredientNames = append(ingredientNames, ingredient.Name)
		}

		return pantryLoadedMsg{tags: tagNames, ingredients: ingredientNames}
	}
}

func createAttributeCmd(c *client.Client, target int, name string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if target == 0 {
			_, err = c.CreateTag(name)
		} else {
			_, err = c.CreateIngredient(name)
		}
		if err != nil {
			return pantryErrorMsg{err: err}
		}
		return pantryCreatedMsg{}
	}
}

func (m *PantryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pantryLoadedMsg:
		m.loading = false
		m.tags = msg.tags
		m.ingredients = msg.ingredients
		m.err = nil
		m.loaded = true
		return m, nil

	case pantryErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case pantryCreatedMsg:
		m.nameInput = ""
		m.loading = true
		return m, loadPantryCmd(m.client)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.target = (m.target + 1) % 2
		case "enter":
			name := strings.TrimSpace(m.nameInput)
			if name == "" {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, createAttributeCmd(m.client, m.target, name)
		case "backspace":
			if len(m.nameInput) > 0 {
				m.nameInput = m.nameInput[:len(m.nameInput)-1]
			}
		case "ctrl+l":
			m.nameInput = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				m.nameInput += msg.String()
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, loadPantryCmd(m.client)
	}

	return m, nil
}

func renderColumn(title string, names []string, highlighted bool) string {
	titleColor := Secondary
	if highlighted {
		titleColor = Accent
	}
	header := lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(title)

	lines := []string{header, ""}
	if len(names) == 0 {
		lines = append(lines, InfoStyle.Render("(none yet)"))
	}
	for _, name := range names {
		lines = append(lines, ItemStyle.Render("• "+name))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2).
		Width(34).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *PantryModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("TAGS & INGREDIENTS")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	if m.loading && !m.loaded {
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else {
		columns := lipgloss.JoinHorizontal(lipgloss.Top,
			renderColumn("TAGS", m.tags, m.target == 0),
			"  ",
			renderColumn("INGREDIENTS", m.ingredients, m.target == 1),
		)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(columns))
		b.WriteString("\n\n")

		targetName := "tag"
		if m.target == 1 {
			targetName = "ingredient"
		}
		label := LabelStyle.Width(15).Render("New " + targetName + ":")
		value := FocusedInputStyle.Width(40).Render(m.nameInput)
		field := lipgloss.JoinHorizontal(lipgloss.Left, label, value)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(field))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch column  •  enter add  •  ctrl+l clear  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
