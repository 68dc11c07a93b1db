package service

import (
	"github.com/shopspring/decimal"

	"pipe-stock/internal/stock/model"
)

// Resolution: выбранная толщина и значение строки при ней.
type Resolution struct {
	Thickness  float64
	Value      float64
	Provenance model.Provenance
	Flat       bool // у строки нет оси толщин, Value, единственное значение
}

// ResolveThickness выбирает толщину в строке:
// не задана → самая тонкая; есть точная → она; иначе ближайшая (при равенстве: меньшая).
func ResolveThickness(s model.Series, requested *float64, nearest bool) (Resolution, error) {
	if s.IsFlat() {
		r := Resolution{Value: *s.Flat, Flat: true}
		if requested != nil {
			r.Thickness = *requested
		}
		return r, nil
	}
	if len(s.Cells) == 0 {
		return Resolution{}, ErrThicknessNotFound
	}
	if requested == nil {
		c := s.Cells[0]
		return Resolution{Thickness: c.Thickness, Value: c.Value, Provenance: model.ProvThinnest}, nil
	}

	// толщины в таблице: точные десятичные строки, поэтому обычное равенство
	for _, c := range s.Cells {
		if c.Thickness == *requested {
			return Resolution{Thickness: c.Thickness, Value: c.Value, Provenance: model.ProvExact}, nil
		}
	}
	if !nearest {
		return Resolution{}, ErrThicknessNotFound
	}

	c := nearestCell(s.Cells, *requested, func(c model.Cell) float64 { return c.Thickness })
	return Resolution{Thickness: c.Thickness, Value: c.Value, Provenance: model.ProvNearest}, nil
}

// nearestCell: минимум |key - target| в десятичной арифметике:
// 1.6 против {1.2, 2.0}, честная ничья, и побеждает меньшая (первая по возрастанию).
func nearestCell(cells []model.Cell, target float64, key func(model.Cell) float64) model.Cell {
	want := decimal.NewFromFloat(target)
	best := 0
	var bestD decimal.Decimal
	for i, c := range cells {
		d := decimal.NewFromFloat(key(c)).Sub(want).Abs()
		if i == 0 || d.LessThan(bestD) {
			best, bestD = i, d
		}
	}
	return cells[best]
}

// MatchByWeight делает обратный подбор толщины по заявленной массе (только таблица масс).
// Берется ячейка с ближайшей массой в пределах tolerance кг; ничья → меньшая толщина.
func MatchByWeight(s model.Series, mass, tolerance float64) (Resolution, bool) {
	if tolerance <= 0 || len(s.Cells) == 0 {
		return Resolution{}, false
	}
	c := nearestCell(s.Cells, mass, func(c model.Cell) float64 { return c.Value })
	diff := decimal.NewFromFloat(c.Value).Sub(decimal.NewFromFloat(mass)).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(tolerance)) {
		return Resolution{}, false
	}
	return Resolution{Thickness: c.Thickness, Value: c.Value, Provenance: model.ProvWeightMatch}, true
}
