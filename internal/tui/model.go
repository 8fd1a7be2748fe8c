// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the terminal catalog browser: a search form over a
// scrollable results table, driven by one query session.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/internal/render"
	"github.com/pdiddy/journal-search/pkg/types"
)

// Form fields in focus order. The results pane follows the last field.
const (
	fieldKeyword = iota
	fieldYear
	fieldType
	fieldAuthor
	numFields

	focusResults = numFields
)

var fieldLabels = [numFields]string{"关键词", "年份", "文章类型", "作者"}

// Options configures the browser.
type Options struct {
	// Title defaults to types.DefaultTitle.
	Title string

	// ArticleTypes feeds completion on the type field.
	ArticleTypes []string

	Table render.TableOptions

	Logger *zap.Logger
}

// Model is the bubbletea model for the browser.
type Model struct {
	session *query.Session
	inputs  []textinput.Model
	focus   int
	results viewport.Model
	styles  Styles
	opts    Options
	message string
	width   int
	height  int
}

// New returns a browser over session.
func New(session *query.Session, opts Options) Model {
	if opts.Title == "" {
		opts.Title = types.DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	years := make([]string, 0, types.LastYear-types.FirstYear+1)
	for _, y := range types.YearOptions() {
		years = append(years, strconv.Itoa(y))
	}

	m := Model{
		session: session,
		inputs:  make([]textinput.Model, numFields),
		results: viewport.New(100, 15),
		styles:  DefaultStyles(),
		opts:    opts,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 30
		ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+f"))
		switch i {
		case fieldYear:
			ti.CharLimit = 4
			ti.Placeholder = fmt.Sprintf("%d-%d", types.FirstYear, types.LastYear)
			ti.ShowSuggestions = true
			ti.SetSuggestions(years)
		case fieldType:
			ti.ShowSuggestions = true
			ti.SetSuggestions(opts.ArticleTypes)
		}
		m.inputs[i] = ti
	}
	m.inputs[fieldKeyword].Focus()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.results.Width = max(msg.Width-2, 20)
		// Title, form, message, count, status and help take the rest.
		m.results.Height = max(msg.Height-14, 3)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyCtrlR:
			m.reset()
			return m, nil
		case tea.KeyTab:
			return m, m.setFocus((m.focus + 1) % (numFields + 1))
		case tea.KeyShiftTab:
			return m, m.setFocus((m.focus + numFields) % (numFields + 1))
		}
		if m.focus == focusResults {
			if nav, ok := navKeys[msg.Type]; ok {
				m.navigate(nav)
				return m, nil
			}
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}

	if m.focus < numFields {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

var navKeys = map[tea.KeyType]query.Nav{
	tea.KeyLeft:  query.Previous,
	tea.KeyRight: query.Next,
	tea.KeyHome:  query.First,
	tea.KeyEnd:   query.Last,
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m *Model) submit() {
	c, err := query.ParseCriteria(
		m.inputs[fieldKeyword].Value(),
		m.inputs[fieldYear].Value(),
		m.inputs[fieldType].Value(),
		m.inputs[fieldAuthor].Value(),
	)
	if err == nil {
		err = m.session.SubmitSearch(c)
	}
	if err != nil {
		m.message = render.ValidationMessage(err)
		if m.message == "" {
			m.message = err.Error()
			m.opts.Logger.Error("search failed", zap.Error(err))
		}
		return
	}
	m.message = ""
	m.refresh()
}

func (m *Model) reset() {
	m.session.Reset()
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.message = ""
	m.setFocus(fieldKeyword)
	m.refresh()
}

func (m *Model) navigate(n query.Nav) {
	if err := m.session.Navigate(n); err != nil {
		// Only an inactive session refuses to move; there is nothing to show.
		return
	}
	m.refresh()
}

// refresh redraws the results grid for the current page.
func (m *Model) refresh() {
	var b strings.Builder
	if p := m.session.View(); p.Active {
		render.Grid(&b, p, m.opts.Table)
	}
	m.results.SetContent(b.String())
	m.results.GotoTop()
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🔎" + m.opts.Title))
	b.WriteString("\n")

	for i, in := range m.inputs {
		label := m.styles.Label
		if i == m.focus {
			label = m.styles.ActiveLabel
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(m.styles.Error.Render(m.message))
		b.WriteString("\n")
	}

	p := m.session.View()
	if p.Active {
		b.WriteString(m.styles.Count.Render(render.ResultCount(p.Window.Total)))
		b.WriteString("\n")
		pane := m.styles.Results
		if m.focus == focusResults {
			pane = m.styles.Focused
		}
		b.WriteString(pane.Render(m.results.View()))
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(render.PageStatus(p)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(helpLine(m.focus == focusResults)))
	return lipgloss.NewStyle().MaxWidth(max(m.width, 0)).Render(b.String())
}

func helpLine(results bool) string {
	if results {
		return "←/→ 翻页 • Home/End 首页/末页 • ↑/↓ 滚动 • Tab 切换 • Ctrl+R 重置 • Esc 退出"
	}
	return "Enter 检索 • Tab 切换 • Ctrl+F 补全 • Ctrl+R 重置 • Esc 退出"
}

// Run starts the browser and blocks until the user quits or ctx ends.
func Run(ctx context.Context, session *query.Session, opts Options) error {
	p := tea.NewProgram(New(session, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
