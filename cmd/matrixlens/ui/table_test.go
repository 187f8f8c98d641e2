package ui

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	table := NewTable("高等数学", []string{"指标点", "支撑强度"})
	table.AddRow(TextCell("1.1"), StrengthCell("H"))
	table.AddRow(TextCell("2.3"), StrengthCell("L"))

	styles := DefaultStyles()
	view := table.View(styles)

	t.Logf("View:\n%q", view)

	if !strings.Contains(view, "高等数学") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "指标点") {
		t.Error("View missing header")
	}
	if !strings.Contains(view, "1.1") {
		t.Error("View missing cell content")
	}
	if !strings.Contains(view, "H") {
		t.Error("View missing strength cell")
	}
}

func TestTableEmpty(t *testing.T) {
	table := NewTable("空表", []string{"a", "b"})
	if got := table.View(DefaultStyles()); got != "" {
		t.Errorf("empty table rendered %q, want empty string", got)
	}
}
