package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"matrixlens/internal/config"
)

// versionsCmd lists the configured matrix versions.
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List configured matrix versions",
	RunE:  runVersions,
}

// statusCmd shows data locations and per-version load state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show data directory and per-version load state",
	RunE:  runStatus,
}

func runVersions(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatalog()
	if err != nil {
		return err
	}
	def := cat.DefaultVersion()
	for _, v := range cat.Versions() {
		marker := " "
		if v.Name == def {
			marker = "*"
		}
		stats, err := cat.Stats(v.Name)
		if err != nil {
			fmt.Printf("%s %s 版  ⚠ %v\n", marker, v.Name, err)
			continue
		}
		fmt.Printf("%s %s 版  %d 门课程, %d 个指标点\n", marker, v.Name, stats.Courses, stats.Outcomes)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, cat, err := buildCatalog()
	if err != nil {
		return err
	}
	path := cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	fmt.Printf("配置文件: %s\n", path)
	fmt.Printf("数据目录: %s\n", cfg.DataDir)
	fmt.Printf("默认版本: %s\n", cat.DefaultVersion())
	fmt.Println()
	for _, v := range cat.Versions() {
		fmt.Printf("%s 版\n", v.Name)
		fmt.Printf("  矩阵文件: %s\n", v.MatrixPath)
		if v.ProgramPath != "" {
			fmt.Printf("  培养方案: %s\n", v.ProgramPath)
		}
		stats, err := cat.Stats(v.Name)
		if err != nil {
			fmt.Printf("  状态: ✗ %v\n", err)
			continue
		}
		indicators := cat.Indicators(v.Name)
		fmt.Printf("  状态: ✓ %d 门课程, %d 个指标点, %d 条指标点描述\n",
			stats.Courses, stats.Outcomes, len(indicators))
	}
	return nil
}
