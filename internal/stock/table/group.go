package table

import (
	"sort"
	"strings"

	"pipe-stock/internal/stock/model"
)

// ключ строки: метки без регистра и пробелов, в исходном порядке
func groupKey(labels []string) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = strings.Join(strings.Fields(strings.ToLower(l)), "")
	}
	return strings.Join(parts, "|")
}

type group struct {
	series model.Series
	vals   map[float64]float64
}

// collect собирает записи в серии в порядке первого появления.
// sum=true: дубли категорий/толщин складываются (остатки), иначе побеждает первый (справочник).
func collect(recs []model.Record, sum bool) []*group {
	byKey := map[string]*group{}
	var out []*group
	for _, r := range recs {
		k := groupKey(r.Labels)
		g, ok := byKey[k]
		if !ok {
			g = &group{
				series: model.Series{Category: r.Labels[0], Labels: append([]string(nil), r.Labels...)},
				vals:   map[float64]float64{},
			}
			byKey[k] = g
			out = append(out, g)
		}
		if r.Thickness == nil {
			switch {
			case g.series.Flat == nil:
				v := r.Value
				g.series.Flat = &v
			case sum:
				*g.series.Flat += r.Value
			}
			continue
		}
		t := *r.Thickness
		if prev, seen := g.vals[t]; seen {
			if sum {
				g.vals[t] = prev + r.Value
			}
			continue
		}
		g.vals[t] = r.Value
	}
	for _, g := range out {
		cells := make([]model.Cell, 0, len(g.vals))
		for t, v := range g.vals {
			cells = append(cells, model.Cell{Thickness: t, Value: v})
		}
		sort.Slice(cells, func(i, j int) bool { return cells[i].Thickness < cells[j].Thickness })
		g.series.Cells = cells
	}
	return out
}

// GroupReference: строки справочника (ширина штрипса или масса) из длинных записей.
func GroupReference(recs []model.Record, kind model.ValueKind) []model.ReferenceRow {
	groups := collect(recs, false)
	out := make([]model.ReferenceRow, len(groups))
	for i, g := range groups {
		out[i] = model.ReferenceRow{Series: g.series, Kind: kind}
	}
	return out
}

// GroupStock: строки остатков; дубли складываются.
func GroupStock(recs []model.Record) []model.StockRow {
	groups := collect(recs, true)
	out := make([]model.StockRow, len(groups))
	for i, g := range groups {
		out[i] = model.StockRow{Series: g.series}
	}
	return out
}
