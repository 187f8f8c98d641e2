package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"matrixlens/internal/matrix"
)

type outcomeItem struct {
	name string
}

func (i outcomeItem) Title() string       { return i.name }
func (i outcomeItem) Description() string { return "" }
func (i outcomeItem) FilterValue() string { return i.name }

// outcomePageModel implements outcome → courses lookup: pick an
// indicator on the left, see its supporting courses ordered strongest
// first on the right.
type outcomePageModel struct {
	list     list.Model
	viewport viewport.Model

	focusViewport bool

	matrix *matrix.Matrix

	width, height int
	styles        Styles
}

func newOutcomePageModel(styles Styles) outcomePageModel {
	vp := viewport.New(0, 0)
	vp.SetContent("选择指标点后按 enter 查询。")

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(nil, delegate, 0, 0)
	l.Title = "指标点列表"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title

	return outcomePageModel{
		list:     l,
		viewport: vp,
		styles:   styles,
	}
}

func (m *outcomePageModel) setData(mat *matrix.Matrix) {
	m.matrix = mat
	var items []list.Item
	if mat != nil {
		for _, o := range mat.Outcomes() {
			items = append(items, outcomeItem{name: o})
		}
	}
	m.list.SetItems(items)
	m.viewport.SetContent("选择指标点后按 enter 查询。")
}

func (m outcomePageModel) filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m outcomePageModel) update(msg tea.Msg) (outcomePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch key.String() {
		case "tab":
			m.focusViewport = !m.focusViewport
			return m, nil
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

func (m *outcomePageModel) runQuery() {
	if m.matrix == nil {
		return
	}
	item, ok := m.list.SelectedItem().(outcomeItem)
	if !ok {
		return
	}
	supports, err := m.matrix.QueryByOutcome(item.name)
	if err != nil {
		m.viewport.SetContent(m.styles.Warning.Render(fmt.Sprintf("查询失败: %v", err)))
		return
	}
	if len(supports) == 0 {
		m.viewport.SetContent(
			m.styles.Bold.Render("🎯 "+item.name) + "\n" +
				m.styles.Muted.Render("暂无课程支撑该指标点。"))
		return
	}
	table := NewTable("🎯 "+item.name, []string{"课程名称", "支撑强度"})
	for _, s := range supports {
		table.AddRow(TextCell(s.Course), StrengthCell(string(s.Strength)))
	}
	body := table.View(m.styles) +
		m.styles.Muted.Render(fmt.Sprintf("共 %d 门课程，按支撑强度降序。", len(supports)))
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
}

func (m *outcomePageModel) setSize(width, height int) {
	m.width, m.height = width, height
	listWidth := width / 3
	m.list.SetSize(listWidth, height)
	m.viewport.Width = width - listWidth - 1
	m.viewport.Height = height
}

func (m outcomePageModel) view() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), " ", m.viewport.View())
}
