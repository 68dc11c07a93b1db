package fileio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	excelize "github.com/xuri/excelize/v2"
)

// Sheet: таблица для выгрузки, шапка и строки (nil → пустая ячейка).
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// WriteXLSX пишет таблицу в xlsx-поток.
func WriteXLSX(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if s.Name != "" {
		if err := f.SetSheetName(sheet, s.Name); err != nil {
			return err
		}
		sheet = s.Name
	}

	for i, h := range s.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, row := range s.Rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// SaveXLSX пишет WriteXLSX в файл (каталог создается при необходимости).
func SaveXLSX(path string, s Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteXLSX(out, s); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// WriteCSV пишет ту же таблицу как CSV (UTF-8).
func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Headers); err != nil {
		return err
	}
	rec := make([]string, len(s.Headers))
	for _, row := range s.Rows {
		for j := range rec {
			rec[j] = ""
			if j < len(row) {
				rec[j] = cellString(row[j])
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
