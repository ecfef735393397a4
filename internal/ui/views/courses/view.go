package courses

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coursedto "attend/internal/modules/course/dto"
	"attend/internal/ui/components"
	"attend/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CoursePort interface {
	ListCourses(ctx context.Context) ([]coursedto.CourseOutput, error)
	GetCourse(ctx context.Context, courseID string) (coursedto.CourseDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CoursesLoadedMsg struct {
	Courses []coursedto.CourseOutput
	Err     error
}

type DetailLoadedMsg struct {
	Detail coursedto.CourseDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type courseItem struct {
	course coursedto.CourseOutput
}

func (i courseItem) Title() string { return i.course.Name }
func (i courseItem) Description() string {
	return fmt.Sprintf("%d/%d  %.1f%%  target %d%%", i.course.Attended, i.course.TotalLectures, i.course.Percent, i.course.TargetPercent)
}
func (i courseItem) FilterValue() string { return i.course.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    CoursePort
	styles  theme.Styles
	list    list.Model
	detail  coursedto.CourseDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port CoursePort, styles theme.Styles) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Courses"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("course", "courses")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		port:    port,
		list:    l,
		preview: viewport.New(0, 0),
		spinner: sp,
		loading: true,
	}
	m.SetStyles(styles)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
	delegate := list.NewDefaultDelegate()
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(s.Palette.Text)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.Foreground(s.Palette.Subtext0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(s.Palette.Lavender).BorderForeground(s.Palette.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(s.Palette.Sapphire).BorderForeground(s.Palette.Lavender)
	m.list.SetDelegate(delegate)
	m.list.Styles.Title = s.Title
	m.preview.Style = lipgloss.NewStyle().Background(s.Palette.Mantle).Foreground(s.Palette.Text).Padding(1)
	m.spinner.Style = lipgloss.NewStyle().Foreground(s.Palette.Lavender)
	m.preview.SetContent(m.renderDetail())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case CoursesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Courses: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Courses"
		keep, _ := m.SelectedCourseID()
		items := make([]list.Item, len(msg.Courses))
		selected := 0
		for i, c := range msg.Courses {
			items[i] = courseItem{course: c}
			if c.ID == keep {
				selected = i
			}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Courses) > 0 {
			m.list.Select(selected)
			cmds = append(cmds, m.loadDetailCmd(msg.Courses[selected].ID))
		} else {
			m.detail = coursedto.CourseDetailOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if id, ok := m.SelectedCourseID(); ok {
				cmds = append(cmds, m.loadDetailCmd(id))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading courses…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := m.styles.Pane.
		Padding(0).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload fetches the course list again, keeping the current selection.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		courses, err := m.port.ListCourses(context.Background())
		return CoursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (m Model) SelectedCourseID() (string, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.course.ID, true
	}
	return "", false
}

func (m Model) SelectedCourse() (coursedto.CourseOutput, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.course, true
	}
	return coursedto.CourseOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.preview.SetContent(m.renderDetail())
}

func (m Model) renderDetail() string {
	d := m.detail
	s := m.styles
	if d.ID == "" {
		return s.Muted.Render("No course selected. Press : and type add <total> <target> <name>.")
	}
	barW := max(10, m.preview.Width-2)
	var sb strings.Builder
	sb.WriteString(s.Title.Render(d.Name) + "\n\n")
	sb.WriteString(components.ProgressBar(d.Percent, d.TargetPercent, barW, s.ForStatus(d.Status), s.Muted, s.Hot) + "\n")
	sb.WriteString(fmt.Sprintf("%s%d / %d (%.1f%%)\n", s.Muted.Render("attended:  "), d.Attended, d.TotalLectures, d.Percent))
	sb.WriteString(fmt.Sprintf("%s%d%%\n", s.Muted.Render("target:    "), d.TargetPercent))
	sb.WriteString(fmt.Sprintf("%s%d\n", s.Muted.Render("remaining: "), max(0, d.Remaining)))
	sb.WriteString(s.ForStatus(d.Status).Render(d.Message) + "\n")
	if d.HasLastMarked {
		sb.WriteString(s.Muted.Render("last:      ") + d.LastMarked.Format("Mon Jan 2 15:04") + "\n")
	}

	st := d.Statistics
	sb.WriteString("\n" + s.Title.Render("Statistics") + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", s.Muted.Render("days:      "), st.TotalDays))
	sb.WriteString(fmt.Sprintf("%s%d\n", s.Muted.Render("streak:    "), st.LongestStreak))
	sb.WriteString(fmt.Sprintf("%s%.1f\n", s.Muted.Render("per week:  "), st.AveragePerWeek))
	sb.WriteString(s.Muted.Render("busiest:   ") + st.MostActiveDay + "\n")
	if d.Attended > 0 {
		sb.WriteString("\n")
		for _, slot := range st.TimeSlots {
			sb.WriteString(fmt.Sprintf("%-18s %s %d\n", slot.Label, components.ProgressBar(slot.Percent, 0, 12, s.Good, s.Muted, s.Muted), slot.Count))
		}
		sb.WriteString("\n")
		for _, w := range st.Weekdays {
			sb.WriteString(fmt.Sprintf("%-18s %s %d\n", w.Day, components.ProgressBar(w.Percent, 0, 12, s.Good, s.Muted, s.Muted), w.Count))
		}
	}

	sb.WriteString("\n" + s.Title.Render("History") + "\n")
	if len(d.History) == 0 {
		sb.WriteString(s.Muted.Render("No attendance recorded yet.") + "\n")
	}
	for _, h := range d.History {
		sb.WriteString(fmt.Sprintf("%4d. %s\n", h.Ordinal, h.At.Format("Mon 2006-01-02 15:04")))
	}
	return sb.String()
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetCourse(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
