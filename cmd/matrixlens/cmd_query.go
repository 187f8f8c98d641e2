package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"matrixlens/cmd/matrixlens/ui"
	"matrixlens/internal/export"
)

var exportPath string

// courseCmd looks up the indicators one or more courses support.
var courseCmd = &cobra.Command{
	Use:   "course [课程名称...]",
	Short: "Look up the indicators a course supports",
	Long: `Prints the graduation-requirement indicators each named course
supports, with the support strength and the indicator description from
the program YAML.

Example:
  matrixlens course 高等数学
  matrixlens course 高等数学 大学物理 --export result.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCourse,
}

// outcomeCmd looks up the courses supporting one indicator.
var outcomeCmd = &cobra.Command{
	Use:   "outcome [指标点]",
	Short: "Look up the courses supporting an indicator",
	Long: `Prints every course supporting the named indicator, strongest
support first.

Example:
  matrixlens outcome 1.1`,
	Args: cobra.ExactArgs(1),
	RunE: runOutcome,
}

// browseCmd prints the whole matrix.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Print the full support matrix",
	RunE:  runBrowse,
}

func runCourse(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatalog()
	if err != nil {
		return err
	}
	mat, err := cat.Matrix(versionName)
	if err != nil {
		return err
	}
	indicators := cat.Indicators(versionName)
	logger.Debug("course lookup", zap.Strings("courses", args))

	results := mat.QueryByCourses(args)
	styles := ui.DefaultStyles()
	var exportRows [][]string
	for _, name := range args {
		relations, ok := results[name]
		if !ok {
			fmt.Printf("⚠ 未找到课程: %s\n\n", name)
			continue
		}
		if len(relations) == 0 {
			fmt.Printf("📖 %s\n该课程暂无关联指标点。\n\n", name)
			continue
		}
		table := ui.NewTable("📖 "+name, []string{"指标点", "支撑强度", "指标点描述"})
		for _, rel := range relations {
			desc := indicators.Describe(rel.Outcome)
			if desc == "" {
				desc = "（暂无描述）"
			}
			table.AddRow(ui.TextCell(rel.Outcome), ui.StrengthCell(string(rel.Strength)), ui.TextCell(desc))
			exportRows = append(exportRows, []string{name, rel.Outcome, string(rel.Strength), desc})
		}
		fmt.Println(table.View(styles))
	}

	if exportPath != "" {
		headers := []string{"课程名称", "指标点", "支撑强度", "指标点描述"}
		if err := export.WriteFile(exportPath, headers, exportRows); err != nil {
			return err
		}
		fmt.Printf("已导出 %d 行到 %s\n", len(exportRows), exportPath)
	}
	return nil
}

func runOutcome(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatalog()
	if err != nil {
		return err
	}
	mat, err := cat.Matrix(versionName)
	if err != nil {
		return err
	}
	name := args[0]
	logger.Debug("outcome lookup", zap.String("outcome", name))

	supports, err := mat.QueryByOutcome(name)
	if err != nil {
		return err
	}
	if desc := cat.Indicators(versionName).Describe(name); desc != "" {
		fmt.Printf("🎯 %s: %s\n", name, desc)
	}
	if len(supports) == 0 {
		fmt.Println("暂无课程支撑该指标点。")
		return nil
	}

	table := ui.NewTable("", []string{"课程名称", "支撑强度"})
	var exportRows [][]string
	for _, s := range supports {
		table.AddRow(ui.TextCell(s.Course), ui.StrengthCell(string(s.Strength)))
		exportRows = append(exportRows, []string{s.Course, string(s.Strength)})
	}
	fmt.Println(table.View(ui.DefaultStyles()))
	fmt.Printf("共 %d 门课程，按支撑强度降序。\n", len(supports))

	if exportPath != "" {
		if err := export.WriteFile(exportPath, []string{"课程名称", "支撑强度"}, exportRows); err != nil {
			return err
		}
		fmt.Printf("已导出 %d 行到 %s\n", len(exportRows), exportPath)
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatalog()
	if err != nil {
		return err
	}
	mat, err := cat.Matrix(versionName)
	if err != nil {
		return err
	}

	table := ui.NewTable("", mat.Headers())
	for _, row := range mat.Rows() {
		cells := make([]ui.Cell, len(row))
		for i, v := range row {
			if i == 0 {
				cells[i] = ui.TextCell(v)
			} else {
				cells[i] = ui.StrengthCell(v)
			}
		}
		table.AddRow(cells...)
	}
	fmt.Println(table.View(ui.DefaultStyles()))
	fmt.Printf("%d 门课程 × %d 个指标点\n", mat.Len(), len(mat.Outcomes()))
	return nil
}
