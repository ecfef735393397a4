package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coursedto "attend/internal/modules/course/dto"
	apperrors "attend/internal/platform/errors"
	"attend/internal/ui/components"
	"attend/internal/ui/theme"
	coursesview "attend/internal/ui/views/courses"
)

// ─── port ────────────────────────────────────────────────────────────────────

type coursePort interface {
	coursesview.CoursePort
	Overview(ctx context.Context) (coursedto.OverviewOutput, error)
	Add(ctx context.Context, name, totalLectures, targetPercent string) (coursedto.CourseOutput, error)
	Edit(ctx context.Context, input coursedto.EditCourseInput) (coursedto.CourseOutput, error)
	Remove(ctx context.Context, courseID string) error
	Mark(ctx context.Context, courseID string) (coursedto.MarkOutput, error)
	Reset(ctx context.Context, courseID string) (coursedto.CourseOutput, error)
	Settings(ctx context.Context) (coursedto.SettingsOutput, error)
	ToggleDarkMode(ctx context.Context) (coursedto.SettingsOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type settingsMsg struct {
	settings coursedto.SettingsOutput
	err      error
}

type overviewMsg struct {
	overview coursedto.OverviewOutput
	err      error
}

type markedMsg struct {
	out coursedto.MarkOutput
	err error
}

type savedMsg struct {
	verb string
	name string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Mark    key.Binding
	Reset   key.Binding
	Remove  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Theme   key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Mark:    key.NewBinding(key.WithKeys("m", "enter"), key.WithHelp("m", "mark attended")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset attendance")),
		Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove course")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add course")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit course")),
		Theme:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mark, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mark, k.Reset, k.Remove},
		{k.Add, k.Edit, k.Theme},
		{k.Palette, k.Help, k.Quit},
	}
}

// pendingAction is a destructive action waiting for y/n.
type pendingAction struct {
	verb     string
	courseID string
	name     string
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Business logic stays behind coursePort;
// the course list and detail pane live in the courses view.
type Model struct {
	port     coursePort
	styles   theme.Styles
	courses  coursesview.Model
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	confirm  *pendingAction
	overview coursedto.OverviewOutput
	status   string
	cheer    bool
	width    int
	height   int
}

func NewModel(port coursePort) Model {
	styles := theme.New(false)
	return Model{
		port:    port,
		styles:  styles,
		courses: coursesview.New(port, styles),
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(styles),
		status:  "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.courses.Init(), m.loadSettingsCmd(), m.loadOverviewCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.palette.Visible() {
		return m.route(msg)
	}
	// The palette owns the keyboard while open; everything else (results of
	// earlier commands, resizes, ticks) still reaches the rest of the model.
	var paletteCmd tea.Cmd
	m.palette, paletteCmd = m.palette.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, paletteCmd
	}
	next, cmd := m.route(msg)
	return next, tea.Batch(paletteCmd, cmd)
}

func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		var cmd tea.Cmd
		m.courses, cmd = m.courses.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 4})
		return m, cmd

	case settingsMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.applyTheme(msg.settings.DarkMode)
		return m, nil

	case overviewMsg:
		if msg.err == nil {
			m.overview = msg.overview
		}
		return m, nil

	case markedMsg:
		if msg.err != nil {
			m.cheer = false
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.cheer = msg.out.TargetReached
		if m.cheer {
			m.status = fmt.Sprintf("🎉 %s reached its %d%% target!", msg.out.Course.Name, msg.out.Course.TargetPercent)
		} else {
			m.status = fmt.Sprintf("marked %s at %s", msg.out.Course.Name, msg.out.MarkedAt.Format("15:04"))
		}
		return m, m.refreshCmd()

	case savedMsg:
		m.cheer = false
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.status = msg.verb + " " + msg.name
		return m, m.refreshCmd()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.answerConfirm(msg.String())
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.courses.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open("")
			return m, cmd
		case key.Matches(msg, m.keys.Add):
			cmd := m.palette.Open("add ")
			return m, cmd
		case key.Matches(msg, m.keys.Theme):
			return m, m.toggleThemeCmd()
		case key.Matches(msg, m.keys.Mark):
			if id, ok := m.courses.SelectedCourseID(); ok {
				return m, m.markCmd(id)
			}
			m.status = "no course selected"
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if c, ok := m.courses.SelectedCourse(); ok {
				cmd := m.palette.Open(fmt.Sprintf("edit %d %d %d %s", c.TotalLectures, c.TargetPercent, c.Attended, c.Name))
				return m, cmd
			}
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.askConfirm("reset")
			return m, nil
		case key.Matches(msg, m.keys.Remove):
			m.askConfirm("remove")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.courses, cmd = m.courses.Update(msg)
	return m, cmd
}

func (m *Model) applyTheme(dark bool) {
	m.styles = theme.New(dark)
	m.courses.SetStyles(m.styles)
	m.palette.SetStyles(m.styles)
}

func (m *Model) askConfirm(verb string) {
	c, ok := m.courses.SelectedCourse()
	if !ok {
		m.status = "no course selected"
		return
	}
	m.confirm = &pendingAction{verb: verb, courseID: c.ID, name: c.Name}
}

func (m Model) answerConfirm(answer string) (tea.Model, tea.Cmd) {
	action := *m.confirm
	switch answer {
	case "y", "Y":
		m.confirm = nil
		switch action.verb {
		case "reset":
			return m, m.resetCmd(action.courseID, action.name)
		case "remove":
			return m, m.removeCmd(action.courseID, action.name)
		}
	case "n", "N", "esc":
		m.confirm = nil
		m.status = action.verb + " cancelled"
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.confirm != nil:
		prompt := fmt.Sprintf("%s attendance for %s? This cannot be undone.\n\n", strings.ToUpper(m.confirm.verb[:1])+m.confirm.verb[1:], m.confirm.name)
		if m.confirm.verb == "remove" {
			prompt = fmt.Sprintf("Remove %s and all of its attendance? This cannot be undone.\n\n", m.confirm.name)
		}
		box := m.styles.PaneActive.Render(m.styles.Bad.Render(prompt) + m.styles.Muted.Render("y: confirm   n: cancel"))
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, box)
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.courses.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	mode := "light"
	if m.styles.Dark {
		mode = "dark"
	}
	left := m.styles.Hot.Render("attend") + "  " +
		m.styles.Muted.Render(fmt.Sprintf("%d courses · %d on track", m.overview.Total, m.overview.OnTrack))
	right := m.styles.Muted.Render(mode)
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return m.styles.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.cheer {
		left = m.styles.Good.Render(left)
	}
	right := m.styles.Muted.Render("m:mark  r:reset  a:add  e:edit  d:theme  ?:help  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return "\n" + m.styles.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	selected, hasSelected := m.courses.SelectedCourseID()

	switch parts[0] {
	case "add":
		if len(parts) < 4 {
			m.status = "usage: add <total> <target> <name>"
			return m, nil
		}
		return m, m.addCmd(strings.Join(parts[3:], " "), parts[1], parts[2])

	case "edit":
		if !hasSelected {
			m.status = "no course selected"
			return m, nil
		}
		if len(parts) < 4 {
			m.status = "usage: edit <total> <target> <attended> [name]"
			return m, nil
		}
		name := strings.Join(parts[4:], " ")
		if name == "" {
			c, _ := m.courses.SelectedCourse()
			name = c.Name
		}
		return m, m.editCmd(coursedto.EditCourseInput{
			CourseID:      selected,
			Name:          name,
			TotalLectures: parts[1],
			TargetPercent: parts[2],
			Attended:      parts[3],
		})

	case "mark":
		if !hasSelected {
			m.status = "no course selected"
			return m, nil
		}
		return m, m.markCmd(selected)

	case "reset", "remove":
		m.askConfirm(parts[0])
		return m, nil

	case "theme":
		return m, m.toggleThemeCmd()

	case "refresh":
		return m, m.refreshCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.courses.Reload(), m.loadOverviewCmd())
}

func (m Model) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.port.Settings(context.Background())
		return settingsMsg{settings: s, err: err}
	}
}

func (m Model) toggleThemeCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.port.ToggleDarkMode(context.Background())
		return settingsMsg{settings: s, err: err}
	}
}

func (m Model) loadOverviewCmd() tea.Cmd {
	return func() tea.Msg {
		o, err := m.port.Overview(context.Background())
		return overviewMsg{overview: o, err: err}
	}
}

func (m Model) markCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Mark(context.Background(), courseID)
		return markedMsg{out: out, err: err}
	}
}

func (m Model) resetCmd(courseID, name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Reset(context.Background(), courseID)
		return savedMsg{verb: "reset", name: name, err: err}
	}
}

func (m Model) removeCmd(courseID, name string) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{verb: "removed", name: name, err: m.port.Remove(context.Background(), courseID)}
	}
}

func (m Model) addCmd(name, total, target string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Add(context.Background(), name, total, target)
		return savedMsg{verb: "added", name: out.Name, err: err}
	}
}

func (m Model) editCmd(input coursedto.EditCourseInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Edit(context.Background(), input)
		return savedMsg{verb: "saved", name: out.Name, err: err}
	}
}
