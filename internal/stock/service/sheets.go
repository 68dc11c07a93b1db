package service

import (
	"pipe-stock/internal/fileio"
	"pipe-stock/internal/stock/model"
)

// TableSheet: объединенная таблица для выгрузки в xlsx/csv.
func TableSheet(rows []model.TableRow) fileio.Sheet {
	s := fileio.Sheet{
		Name:    "Stock",
		Headers: []string{"Pipe_Category", "Thickness_mm", "Strip_Width_mm", "Mass_kg", "Stock", "Unit", "Pieces"},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []any{
			r.Category, cell(r.Thickness), cell(r.StripWidth), cell(r.Mass), r.Stock, string(r.Unit), cell(r.Pieces),
		})
	}
	return s
}

// WeightSheetTable: лист масс в длинном формате.
func WeightSheetTable(lines []WeightLine) fileio.Sheet {
	s := fileio.Sheet{
		Name:    "Weights",
		Headers: []string{"Pipe_Category", "Thickness_mm", "Strip_Width_mm", "Mass_kg"},
		Rows:    make([][]any, 0, len(lines)),
	}
	for _, l := range lines {
		s.Rows = append(s.Rows, []any{l.Category, l.Thickness, l.StripWidth, l.Mass})
	}
	return s
}

// nil-указатель → пустая ячейка (а не типизированный nil)
func cell(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
