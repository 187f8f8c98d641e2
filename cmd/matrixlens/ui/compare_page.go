package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"matrixlens/internal/compare"
	"matrixlens/internal/matrix"
)

type compareItem struct {
	name string
}

func (i compareItem) Title() string       { return i.name }
func (i compareItem) Description() string { return "" }
func (i compareItem) FilterValue() string { return i.name }

var changeLabels = map[compare.Change]string{
	compare.Kept:    "保持",
	compare.Added:   "新增",
	compare.Removed: "移除",
	compare.Changed: "变更",
}

var changeColors = map[compare.Change]lipgloss.Color{
	compare.Kept:    lipgloss.Color("#198754"),
	compare.Added:   lipgloss.Color("#fd7e14"),
	compare.Removed: lipgloss.Color("#dc3545"),
	compare.Changed: lipgloss.Color("#fd7e14"),
}

// comparePageModel diffs a course between two matrix versions: the
// course union on the left, the per-outcome change list on the right.
type comparePageModel struct {
	list     list.Model
	viewport viewport.Model

	focusViewport bool

	oldVersion, newVersion string
	oldM, newM             *matrix.Matrix
	loadErr                error

	width, height int
	styles        Styles
}

func newComparePageModel(styles Styles) comparePageModel {
	vp := viewport.New(0, 0)
	vp.SetContent("加载版本数据中…")

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(nil, delegate, 0, 0)
	l.Title = "课程列表"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title

	return comparePageModel{
		list:     l,
		viewport: vp,
		styles:   styles,
	}
}

func (m *comparePageModel) setData(msg comparePairMsg) {
	m.loadErr = msg.err
	if msg.err != nil {
		m.viewport.SetContent(m.styles.Warning.Render(fmt.Sprintf("版本数据加载失败: %v", msg.err)))
		return
	}
	m.oldVersion, m.newVersion = msg.oldVersion, msg.newVersion
	m.oldM, m.newM = msg.oldM, msg.newM

	var items []list.Item
	for _, c := range compare.AllCourses(m.oldM, m.newM) {
		items = append(items, compareItem{name: c})
	}
	m.list.SetItems(items)
	m.viewport.SetContent(fmt.Sprintf("对比 %s 版 → %s 版。选择课程后按 enter 查看变化。",
		m.oldVersion, m.newVersion))
}

func (m comparePageModel) filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m comparePageModel) update(msg tea.Msg) (comparePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch key.String() {
		case "tab":
			m.focusViewport = !m.focusViewport
			return m, nil
		case "enter":
			m.runDiff()
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

func (m *comparePageModel) runDiff() {
	if m.oldM == nil || m.newM == nil {
		return
	}
	item, ok := m.list.SelectedItem().(compareItem)
	if !ok {
		return
	}
	result := compare.Course(m.oldM, m.newM, item.name)

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("🔀 %s (%s 版 → %s 版)",
		item.name, m.oldVersion, m.newVersion)))
	sb.WriteString("\n")

	switch {
	case !result.InOld:
		sb.WriteString(m.styles.Info.Render(fmt.Sprintf("该课程为 %s 版新增课程。", m.newVersion)))
		sb.WriteString("\n")
	case !result.InNew:
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("该课程在 %s 版中已移除。", m.newVersion)))
		sb.WriteString("\n")
	case result.Identical():
		sb.WriteString(m.styles.Success.Render("两版支撑关系完全一致。"))
		sb.WriteString("\n")
	}

	if len(result.Changes) > 0 {
		table := NewTable("", []string{"指标点", m.oldVersion + " 版", m.newVersion + " 版", "状态"})
		for _, e := range result.Changes {
			table.AddRow(
				TextCell(e.Outcome),
				strengthOrDash(e.Old),
				strengthOrDash(e.New),
				Cell{Text: changeLabels[e.Change]},
			)
		}
		sb.WriteString(table.View(m.styles))
		sb.WriteString(m.legend())
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoTop()
}

func strengthOrDash(s string) Cell {
	if s == "" {
		return TextCell("—")
	}
	return StrengthCell(s)
}

func (m comparePageModel) legend() string {
	order := []compare.Change{compare.Kept, compare.Added, compare.Removed, compare.Changed}
	parts := make([]string, 0, len(order))
	for _, c := range order {
		style := lipgloss.NewStyle().Foreground(changeColors[c]).Bold(true)
		parts = append(parts, style.Render(changeLabels[c]))
	}
	return m.styles.Muted.Render("状态: ") + strings.Join(parts, m.styles.Muted.Render(" / "))
}

func (m *comparePageModel) setSize(width, height int) {
	m.width, m.height = width, height
	listWidth := width / 3
	m.list.SetSize(listWidth, height)
	m.viewport.Width = width - listWidth - 1
	m.viewport.Height = height
}

func (m comparePageModel) view() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), " ", m.viewport.View())
}
