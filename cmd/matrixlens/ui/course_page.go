package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"matrixlens/internal/matrix"
	"matrixlens/internal/program"
)

type courseItem struct {
	name     string
	selected bool
}

func (i courseItem) Title() string {
	if i.selected {
		return "✓ " + i.name
	}
	return i.name
}
func (i courseItem) Description() string { return "" }
func (i courseItem) FilterValue() string { return i.name }

// coursePageModel implements course → outcomes lookup: a filterable
// course list on the left, the query result in a viewport on the
// right. Space marks courses, enter queries the marked set (or the
// highlighted course when nothing is marked).
type coursePageModel struct {
	list     list.Model
	viewport viewport.Model

	focusViewport bool

	matrix     *matrix.Matrix
	indicators program.IndicatorMap
	selected   map[string]bool

	width, height int
	styles        Styles
}

func newCoursePageModel(styles Styles) coursePageModel {
	vp := viewport.New(0, 0)
	vp.SetContent("选择课程后按 enter 查询。")

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(nil, delegate, 0, 0)
	l.Title = "课程列表"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title

	return coursePageModel{
		list:     l,
		viewport: vp,
		selected: make(map[string]bool),
		styles:   styles,
	}
}

func (m *coursePageModel) setData(mat *matrix.Matrix, indicators program.IndicatorMap) {
	m.matrix = mat
	m.indicators = indicators
	m.selected = make(map[string]bool)
	m.list.SetItems(m.courseItems())
	m.viewport.SetContent("选择课程后按 enter 查询。")
}

func (m *coursePageModel) courseItems() []list.Item {
	if m.matrix == nil {
		return nil
	}
	courses := m.matrix.Courses()
	items := make([]list.Item, len(courses))
	for i, c := range courses {
		items[i] = courseItem{name: c, selected: m.selected[c]}
	}
	return items
}

func (m coursePageModel) filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m coursePageModel) update(msg tea.Msg) (coursePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch key.String() {
		case "tab":
			m.focusViewport = !m.focusViewport
			return m, nil
		case " ":
			if item, ok := m.list.SelectedItem().(courseItem); ok {
				m.selected[item.name] = !m.selected[item.name]
				idx := m.list.Index()
				cmd := m.list.SetItems(m.courseItems())
				m.list.Select(idx)
				return m, cmd
			}
		case "enter":
			m.runQuery()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focusViewport && !m.filtering() {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *coursePageModel) runQuery() {
	if m.matrix == nil {
		return
	}
	var names []string
	for name, on := range m.selected {
		if on {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		if item, ok := m.list.SelectedItem().(courseItem); ok {
			names = []string{item.name}
		}
	}
	if len(names) == 0 {
		return
	}

	// Preserve matrix row order for multi-course output.
	ordered := make([]string, 0, len(names))
	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[n] = true
	}
	for _, c := range m.matrix.Courses() {
		if requested[c] {
			ordered = append(ordered, c)
		}
	}

	results := m.matrix.QueryByCourses(ordered)
	var sections []string
	for _, name := range ordered {
		relations := results[name]
		if len(relations) == 0 {
			sections = append(sections,
				m.styles.Bold.Render("📖 "+name)+"\n"+
					m.styles.Muted.Render("该课程暂无关联指标点。"))
			continue
		}
		table := NewTable("📖 "+name, []string{"指标点", "支撑强度", "指标点描述"})
		for _, rel := range relations {
			desc := m.indicators.Describe(rel.Outcome)
			if desc == "" {
				desc = "（暂无描述）"
			}
			table.AddRow(TextCell(rel.Outcome), StrengthCell(string(rel.Strength)), TextCell(desc))
		}
		sections = append(sections, table.View(m.styles))
	}
	m.viewport.SetContent(strings.Join(sections, "\n"))
	m.viewport.GotoTop()
}

func (m *coursePageModel) setSize(width, height int) {
	m.width, m.height = width, height
	listWidth := width / 3
	m.list.SetSize(listWidth, height)
	m.viewport.Width = width - listWidth - 1
	m.viewport.Height = height
}

func (m coursePageModel) view() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), " ", m.viewport.View())
}
