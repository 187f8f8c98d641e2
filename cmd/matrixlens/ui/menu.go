package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	desc  string
	mode  mode
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// menuModel is the mode picker, standing in for the original sidebar.
type menuModel struct {
	list   list.Model
	styles Styles
}

func newMenuModel(styles Styles) menuModel {
	items := []list.Item{
		menuItem{title: "课程反查 (查指标)", desc: "课程 → 毕业要求指标点", mode: modeCourse},
		menuItem{title: "指标反查 (查课程)", desc: "毕业要求 → 支撑课程", mode: modeOutcome},
		menuItem{title: "全表浏览", desc: "完整关联矩阵", mode: modeBrowse},
		menuItem{title: "版本对比", desc: "课程支撑度跨版本对比", mode: modeCompare},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "查询模式"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = styles.Title

	return menuModel{list: l, styles: styles}
}

func (m menuModel) selected() mode {
	if item, ok := m.list.SelectedItem().(menuItem); ok {
		return item.mode
	}
	return modeMenu
}

func (m menuModel) update(msg tea.Msg) (menuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *menuModel) setSize(width, height int) {
	m.list.SetSize(width, height-2)
}

func (m menuModel) view() string {
	return m.list.View()
}
