// Package export writes query results as CSV files. Output carries a
// UTF-8 byte-order mark so Excel opens the Chinese headers correctly,
// matching the files the original tool produced for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Write streams a BOM-prefixed CSV of headers plus rows to w.
func Write(w io.Writer, headers []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV to path. This writes a new file for the
// user; source data files are never touched.
func WriteFile(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, headers, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
