package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupData writes a two-version dataset and points the global flags
// at it. The config path is set to a missing file so the built-in
// defaults (versions 2023 and 2019) apply.
func setupData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	newCSV := "课程名称,1.1,1.2,2.3\n高等数学,H,M,\n大学物理,,L,H\n"
	oldCSV := "课程名称,1.1,1.2,2.3\n高等数学,M,M,\n电路原理,,,H\n"
	program := `graduation_requirements:
  - id: "1"
    indicators:
      - id: "1.1"
        content: "掌握数学基础"
`
	writeFile(t, filepath.Join(dir, "matrix_2023.csv"), newCSV)
	writeFile(t, filepath.Join(dir, "matrix_2019.csv"), oldCSV)
	writeFile(t, filepath.Join(dir, "2023_program.yaml"), program)

	logger = zap.NewNop()
	dataDir = dir
	cfgPath = filepath.Join(dir, "no-such-config.yaml")
	versionName = ""
	exportPath = ""
	compareFrom, compareTo = "", ""
	t.Cleanup(func() {
		dataDir, cfgPath, versionName, exportPath = "", "", "", ""
		compareFrom, compareTo = "", ""
	})
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCourse(t *testing.T) {
	setupData(t)

	output := captureOutput(t, func() {
		if err := runCourse(&cobra.Command{}, []string{"高等数学", "不存在的课"}); err != nil {
			t.Fatalf("runCourse returned error: %v", err)
		}
	})

	if !strings.Contains(output, "高等数学") {
		t.Fatalf("expected course header, got: %s", output)
	}
	if !strings.Contains(output, "掌握数学基础") {
		t.Fatalf("expected indicator description, got: %s", output)
	}
	if !strings.Contains(output, "未找到课程: 不存在的课") {
		t.Fatalf("expected not-found notice, got: %s", output)
	}
}

func TestRunCourseExport(t *testing.T) {
	dir := setupData(t)
	exportPath = filepath.Join(dir, "out.csv")

	captureOutput(t, func() {
		if err := runCourse(&cobra.Command{}, []string{"高等数学"}); err != nil {
			t.Fatalf("runCourse returned error: %v", err)
		}
	})

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("export missing UTF-8 BOM")
	}
	if !strings.Contains(string(data), "高等数学,1.1,H") {
		t.Errorf("export missing row, got: %s", data)
	}
}

func TestRunOutcome(t *testing.T) {
	setupData(t)

	output := captureOutput(t, func() {
		if err := runOutcome(&cobra.Command{}, []string{"1.2"}); err != nil {
			t.Fatalf("runOutcome returned error: %v", err)
		}
	})

	// M before L
	mi := strings.Index(output, "高等数学")
	li := strings.Index(output, "大学物理")
	if mi < 0 || li < 0 || mi > li {
		t.Fatalf("expected strength-sorted courses, got: %s", output)
	}
}

func TestRunOutcomeUnknown(t *testing.T) {
	setupData(t)

	err := runOutcome(&cobra.Command{}, []string{"9.9"})
	if err == nil {
		t.Fatal("expected error for unknown indicator")
	}
}

func TestRunVersions(t *testing.T) {
	setupData(t)

	output := captureOutput(t, func() {
		if err := runVersions(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runVersions returned error: %v", err)
		}
	})

	if !strings.Contains(output, "* 2023 版") {
		t.Fatalf("expected default marker on 2023, got: %s", output)
	}
	if !strings.Contains(output, "2019 版") {
		t.Fatalf("expected 2019 listed, got: %s", output)
	}
}

func TestRunCompare(t *testing.T) {
	setupData(t)

	output := captureOutput(t, func() {
		if err := runCompare(&cobra.Command{}, []string{"高等数学"}); err != nil {
			t.Fatalf("runCompare returned error: %v", err)
		}
	})

	// 1.1 went M → H between 2019 and 2023.
	if !strings.Contains(output, "变更") {
		t.Fatalf("expected a changed entry, got: %s", output)
	}
}

func TestRunStatusMissingData(t *testing.T) {
	setupData(t)
	if err := os.Remove(filepath.Join(dataDir, "matrix_2019.csv")); err != nil {
		t.Fatal(err)
	}

	output := captureOutput(t, func() {
		if err := runStatus(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runStatus returned error: %v", err)
		}
	})

	if !strings.Contains(output, "✓") || !strings.Contains(output, "✗") {
		t.Fatalf("expected mixed load states, got: %s", output)
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}
