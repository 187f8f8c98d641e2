package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"matrixlens/internal/catalog"
	"matrixlens/internal/compare"
	"matrixlens/internal/matrix"
	"matrixlens/internal/program"
)

// mode selects the active page, mirroring the original sidebar radio.
type mode int

const (
	modeMenu mode = iota
	modeCourse
	modeOutcome
	modeBrowse
	modeCompare
)

// dataMsg delivers a freshly loaded matrix (or its load failure).
type dataMsg struct {
	version    string
	matrix     *matrix.Matrix
	indicators program.IndicatorMap
	err        error
}

// comparePairMsg delivers the two matrices the compare page diffs.
type comparePairMsg struct {
	oldVersion, newVersion string
	oldM, newM             *matrix.Matrix
	err                    error
}

// fileChangedMsg reports a watched data file change.
type fileChangedMsg struct{ path string }

// Model is the top-level interactive model: a mode menu plus one page
// per query mode.
type Model struct {
	cat     *catalog.Catalog
	version string
	watcher *matrix.Watcher

	matrix     *matrix.Matrix
	indicators program.IndicatorMap
	loadErr    error

	mode    mode
	menu    menuModel
	course  coursePageModel
	outcome outcomePageModel
	browse  browsePageModel
	compare comparePageModel

	width, height int
	styles        Styles
}

// NewModel creates the interactive model. watcher may be nil; when set,
// its events trigger live reloads.
func NewModel(cat *catalog.Catalog, version string, watcher *matrix.Watcher) Model {
	styles := DefaultStyles()
	if version == "" {
		version = cat.DefaultVersion()
	}
	return Model{
		cat:     cat,
		version: version,
		watcher: watcher,
		mode:    modeMenu,
		menu:    newMenuModel(styles),
		course:  newCoursePageModel(styles),
		outcome: newOutcomePageModel(styles),
		browse:  newBrowsePageModel(styles),
		compare: newComparePageModel(styles),
		styles:  styles,
	}
}

// Init loads the selected version and starts listening for file
// changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.watchCmd())
}

func (m Model) loadCmd() tea.Cmd {
	cat, version := m.cat, m.version
	return func() tea.Msg {
		mat, err := cat.Matrix(version)
		if err != nil {
			return dataMsg{version: version, err: err}
		}
		return dataMsg{
			version:    version,
			matrix:     mat,
			indicators: cat.Indicators(version),
		}
	}
}

func (m Model) loadCompareCmd() tea.Cmd {
	cat := m.cat
	return func() tea.Msg {
		versions := cat.Versions()
		oldV := versions[len(versions)-1]
		newV := versions[0]
		oldM, newM, err := compare.LoadPair(cat.Accessor(), oldV.MatrixPath, newV.MatrixPath)
		return comparePairMsg{
			oldVersion: oldV.Name,
			newVersion: newV.Name,
			oldM:       oldM,
			newM:       newM,
			err:        err,
		}
	}
}

func (m Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.setSize(msg.Width, m.contentHeight())
		m.course.setSize(msg.Width, m.contentHeight())
		m.outcome.setSize(msg.Width, m.contentHeight())
		m.browse.setSize(msg.Width, m.contentHeight())
		m.compare.setSize(msg.Width, m.contentHeight())
		return m, nil

	case dataMsg:
		m.version = msg.version
		m.matrix = msg.matrix
		m.indicators = msg.indicators
		m.loadErr = msg.err
		if msg.err == nil {
			m.course.setData(msg.matrix, msg.indicators)
			m.outcome.setData(msg.matrix)
			m.browse.setData(msg.matrix, m.styles)
		}
		return m, nil

	case comparePairMsg:
		m.compare.setData(msg)
		return m, nil

	case fileChangedMsg:
		// Keep listening and re-run the load so views refresh.
		return m, tea.Batch(m.loadCmd(), m.loadCompareCmd(), m.watchCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeMenu {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "v":
			return m.cycleVersion()
		case "r":
			// Explicit reload; the accessor re-parses when the file
			// changed on disk.
			return m, m.loadCmd()
		case "enter":
			return m.enterMode(m.menu.selected())
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.update(msg)
		return m, cmd
	}

	// In a page: esc backs out to the menu unless the page is
	// capturing input (list filtering).
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if msg.String() == "esc" && !m.activePageFiltering() {
		m.mode = modeMenu
		return m, nil
	}
	if m.loadErr != nil {
		// Query pages are blocked until data loads.
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeCourse:
		m.course, cmd = m.course.update(msg)
	case modeOutcome:
		m.outcome, cmd = m.outcome.update(msg)
	case modeBrowse:
		m.browse, cmd = m.browse.update(msg)
	case modeCompare:
		m.compare, cmd = m.compare.update(msg)
	}
	return m, cmd
}

func (m Model) enterMode(target mode) (tea.Model, tea.Cmd) {
	m.mode = target
	if target == modeCompare {
		return m, m.loadCompareCmd()
	}
	return m, nil
}

func (m Model) cycleVersion() (tea.Model, tea.Cmd) {
	versions := m.cat.Versions()
	if len(versions) < 2 {
		return m, nil
	}
	next := versions[0].Name
	for i, v := range versions {
		if v.Name == m.version {
			next = versions[(i+1)%len(versions)].Name
			break
		}
	}
	m.version = next
	return m, m.loadCmd()
}

func (m Model) activePageFiltering() bool {
	switch m.mode {
	case modeCourse:
		return m.course.filtering()
	case modeOutcome:
		return m.outcome.filtering()
	case modeCompare:
		return m.compare.filtering()
	}
	return false
}

func (m Model) contentHeight() int {
	// Header and footer take one line each.
	h := m.height - 2
	if h < 0 {
		h = 0
	}
	return h
}

// View renders the current page under a header/footer shell.
func (m Model) View() string {
	header := m.styles.Header.Render(fmt.Sprintf("matrixlens · 毕业要求关联矩阵速查 (%s 版)", m.version))

	var body string
	switch {
	case m.loadErr != nil && m.mode != modeMenu:
		body = m.loadErrorView()
	case m.mode == modeMenu:
		body = m.menuView()
	case m.mode == modeCourse:
		body = m.course.view()
	case m.mode == modeOutcome:
		body = m.outcome.view()
	case m.mode == modeBrowse:
		body = m.browse.view()
	case m.mode == modeCompare:
		body = m.compare.view()
	}

	footer := m.styles.Footer.Render(m.footerText())
	return header + "\n" + body + "\n" + footer
}

func (m Model) menuView() string {
	status := m.statusLine()
	return m.menu.view() + "\n" + status
}

func (m Model) statusLine() string {
	if m.loadErr != nil {
		return m.styles.Warning.Render("⚠ " + loadErrorText(m.loadErr))
	}
	if m.matrix == nil {
		return m.styles.Muted.Render("加载中…")
	}
	return m.styles.Success.Render(fmt.Sprintf("✓ %s 版数据已加载: %d 门课程, %d 个指标点",
		m.version, m.matrix.Len(), len(m.matrix.Outcomes())))
}

func (m Model) loadErrorView() string {
	return m.styles.Content.Render(m.styles.Warning.Render(loadErrorText(m.loadErr)) +
		"\n\n" + m.styles.Muted.Render("修正数据文件后，esc 返回菜单按 r 重新加载。"))
}

func loadErrorText(err error) string {
	if errors.Is(err, matrix.ErrNotFound) {
		return fmt.Sprintf("数据未找到: %v", err)
	}
	return fmt.Sprintf("数据加载失败: %v", err)
}

func (m Model) footerText() string {
	switch m.mode {
	case modeMenu:
		return "↑/↓ 选择 · enter 进入 · v 切换版本 · r 重新加载 · q 退出"
	case modeBrowse:
		return "↑/↓/pgup/pgdn 滚动 · esc 返回"
	default:
		return "/ 过滤 · tab 切换焦点 · enter 查询 · esc 返回"
	}
}
