package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"matrixlens/cmd/matrixlens/ui"
	"matrixlens/internal/catalog"
	"matrixlens/internal/compare"
)

var compareFrom, compareTo string

// compareCmd diffs course support between two versions.
var compareCmd = &cobra.Command{
	Use:   "compare [课程名称]",
	Short: "Diff a course's support between two versions",
	Long: `Compares one course's indicator support between two matrix
versions. Without a course argument, lists every course whose support
changed.

Example:
  matrixlens compare 高等数学
  matrixlens compare 高等数学 --from 2019 --to 2023`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

var changeLabels = map[compare.Change]string{
	compare.Kept:    "保持",
	compare.Added:   "新增",
	compare.Removed: "移除",
	compare.Changed: "变更",
}

func runCompare(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatalog()
	if err != nil {
		return err
	}
	oldV, newV, err := comparePair(cat)
	if err != nil {
		return err
	}
	logger.Debug("comparing versions",
		zap.String("from", oldV.Name), zap.String("to", newV.Name))

	oldM, newM, err := compare.LoadPair(cat.Accessor(), oldV.MatrixPath, newV.MatrixPath)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		printDiff(compare.Course(oldM, newM, args[0]), oldV.Name, newV.Name)
		return nil
	}

	// No course named: summarize every course that moved.
	changed := 0
	for _, course := range compare.AllCourses(oldM, newM) {
		result := compare.Course(oldM, newM, course)
		if result.InOld && result.InNew && result.Identical() {
			continue
		}
		changed++
		printDiff(result, oldV.Name, newV.Name)
	}
	if changed == 0 {
		fmt.Printf("%s 版与 %s 版的支撑关系完全一致。\n", oldV.Name, newV.Name)
	} else {
		fmt.Printf("共 %d 门课程的支撑关系有变化。\n", changed)
	}
	return nil
}

// comparePair resolves the two versions to diff, defaulting to oldest
// against newest in configured order.
func comparePair(cat *catalog.Catalog) (catalog.Version, catalog.Version, error) {
	versions := cat.Versions()
	if len(versions) < 2 && (compareFrom == "" || compareTo == "") {
		return catalog.Version{}, catalog.Version{},
			fmt.Errorf("comparison needs two configured versions, have %d", len(versions))
	}
	from, to := compareFrom, compareTo
	if from == "" {
		from = versions[len(versions)-1].Name
	}
	if to == "" {
		to = versions[0].Name
	}
	oldV, err := cat.Resolve(from)
	if err != nil {
		return catalog.Version{}, catalog.Version{}, err
	}
	newV, err := cat.Resolve(to)
	if err != nil {
		return catalog.Version{}, catalog.Version{}, err
	}
	return oldV, newV, nil
}

func printDiff(result compare.Result, oldName, newName string) {
	fmt.Printf("🔀 %s (%s 版 → %s 版)\n", result.Course, oldName, newName)
	switch {
	case !result.InOld && !result.InNew:
		fmt.Println("两版均无该课程。")
		return
	case !result.InOld:
		fmt.Printf("该课程为 %s 版新增课程。\n\n", newName)
		return
	case !result.InNew:
		fmt.Printf("该课程在 %s 版中已移除。\n\n", newName)
		return
	case result.Identical():
		fmt.Println("两版支撑关系完全一致。")
		fmt.Println()
		return
	}

	table := ui.NewTable("", []string{"指标点", oldName + " 版", newName + " 版", "状态"})
	for _, e := range result.Changes {
		table.AddRow(
			ui.TextCell(e.Outcome),
			strengthOrDash(e.Old),
			strengthOrDash(e.New),
			ui.TextCell(changeLabels[e.Change]),
		)
	}
	fmt.Println(table.View(ui.DefaultStyles()))
}

func strengthOrDash(s string) ui.Cell {
	if s == "" {
		return ui.TextCell("—")
	}
	return ui.StrengthCell(s)
}
