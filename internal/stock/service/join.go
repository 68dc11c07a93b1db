package service

import (
	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/utils"
)

// Table строит объединенную таблицу остатков со справочниками по (категория, толщина).
func (e *Engine) Table(f model.TableFilter) []model.TableRow {
	rows := e.filterRows(f.Query)
	var out []model.TableRow
	for _, i := range rows {
		s := &e.tables.Stock[i]
		refs := e.referencesFor(s.Labels)

		if s.IsFlat() {
			if f.Thickness != nil {
				continue
			}
			out = append(out, e.tableRow(s, refs, nil, *s.Flat))
			continue
		}
		for _, c := range s.Cells {
			if f.Thickness != nil && c.Thickness != *f.Thickness {
				continue
			}
			t := c.Thickness
			out = append(out, e.tableRow(s, refs, &t, c.Value))
		}
	}
	if f.InStock {
		kept := out[:0]
		for _, r := range out {
			if r.Stock > 0 {
				kept = append(kept, r)
			}
		}
		out = kept
	}
	return out
}

func (e *Engine) filterRows(query string) []int {
	if query == "" {
		all := make([]int, len(e.tables.Stock))
		for i := range all {
			all[i] = i
		}
		return all
	}
	q := ParseQuery(query)
	return e.stockIdx.MatchAll(q.Category)
}

// referencesFor подбирает справочники для строки остатков, пробуя ее метки по порядку.
func (e *Engine) referencesFor(labels []string) []*model.ReferenceRow {
	for _, l := range labels {
		if refs := e.references(l); len(refs) > 0 {
			return refs
		}
	}
	return nil
}

func (e *Engine) tableRow(s *model.StockRow, refs []*model.ReferenceRow, t *float64, qty float64) model.TableRow {
	row := model.TableRow{Category: s.Category, Thickness: t, Stock: qty, Unit: e.opt.StockUnit}
	r := Resolution{Flat: t == nil}
	if t != nil {
		r.Thickness = *t
	}
	mass, width, _ := e.mass(model.ParsedQuery{}, refs, r)
	row.Mass, row.StripWidth = mass, width

	a := Evaluate(qty, e.opt.StockUnit, mass, 0)
	if mass != nil || e.opt.StockUnit == model.UnitPieces {
		row.Pieces = utils.FloatPtr(a.Pieces)
	}
	return row
}

// WeightLine: строка листа масс (категория, толщина, ширина штрипса, масса трубы).
type WeightLine struct {
	Category   string  `json:"pipe_category"`
	Thickness  float64 `json:"thickness_mm"`
	StripWidth float64 `json:"strip_width_mm"`
	Mass       float64 `json:"mass_kg"`
}

// WeightSheet разворачивает таблицу ширин в длинный лист масс по формуле K * width * thickness.
// Ячейки, по которым массу посчитать нельзя, пропускаются.
func WeightSheet(width []model.ReferenceRow, k float64) []WeightLine {
	if k <= 0 {
		k = DefaultMassFactor
	}
	var out []WeightLine
	for _, r := range width {
		for _, c := range r.Cells {
			m, err := StripMass(k, c.Value, c.Thickness)
			if err != nil {
				continue
			}
			out = append(out, WeightLine{Category: r.Category, Thickness: c.Thickness, StripWidth: c.Value, Mass: m})
		}
	}
	return out
}
