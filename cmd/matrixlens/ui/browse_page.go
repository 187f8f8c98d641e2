package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"matrixlens/internal/matrix"
)

// browsePageModel shows the whole matrix in a scrollable viewport.
type browsePageModel struct {
	viewport viewport.Model
}

func newBrowsePageModel(styles Styles) browsePageModel {
	vp := viewport.New(0, 0)
	vp.SetContent(styles.Muted.Render("加载中…"))
	return browsePageModel{viewport: vp}
}

func (m *browsePageModel) setData(mat *matrix.Matrix, styles Styles) {
	if mat == nil {
		return
	}
	table := NewTable("📊 全表浏览", mat.Headers())
	for _, row := range mat.Rows() {
		cells := make([]Cell, len(row))
		for i, v := range row {
			if i == 0 {
				cells[i] = TextCell(v)
			} else {
				cells[i] = StrengthCell(v)
			}
		}
		table.AddRow(cells...)
	}
	m.viewport.SetContent(table.View(styles))
	m.viewport.GotoTop()
}

func (m browsePageModel) update(msg tea.Msg) (browsePageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browsePageModel) setSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m browsePageModel) view() string {
	return m.viewport.View()
}
