// Package table разворачивает широкие таблицы (категории × колонки толщин)
// в длинные записи {category, thickness, value} и собирает из них типизированные строки.
package table

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/utils"
)

const (
	DefaultCategory = "pipe category|category|size|pipe size|pipe|nb|od|description"
	DefaultValue    = "stock|qty|quantity|weight|mass|mt|kg|pcs"

	headerProbeRows = 15
)

var (
	ErrNoCategoryColumn = errors.New("table: no category column")
	ErrNoValueColumns   = errors.New("table: no thickness or value columns")
)

// Layout описывает, как читать лист. Пустые поля → значения по умолчанию.
type Layout struct {
	HeaderRow int    `yaml:"header_row"` // 1-based; 0: искать автоматически
	Category  string `yaml:"category"`   // алиасы колонок категории через "|"
	Value     string `yaml:"value"`      // алиасы колонки значения для плоских таблиц
}

func (l Layout) withDefaults() Layout {
	if strings.TrimSpace(l.Category) == "" {
		l.Category = DefaultCategory
	}
	if strings.TrimSpace(l.Value) == "" {
		l.Value = DefaultValue
	}
	return l
}

type Columns struct {
	HeaderRow int             // 0-based индекс строки шапки
	Labels    []int           // колонки меток категории
	Thickness map[int]float64 // колонка → толщина
	Value     int             // колонка значения плоской таблицы, -1 если нет
}

// ScanHeader разбирает строку шапки: метки по алиасам, толщины, по числу в заголовке.
func ScanHeader(header []string, l Layout) Columns {
	l = l.withDefaults()
	cats := splitAlts(l.Category)
	cols := Columns{Thickness: map[int]float64{}, Value: -1}
	used := map[int]bool{}
	for i, h := range header {
		if matchesAny(h, cats) {
			cols.Labels = append(cols.Labels, i)
			used[i] = true
		}
	}
	for i, h := range header {
		if used[i] {
			continue
		}
		if t, ok := utils.FirstNumber(h); ok && t > 0 {
			if _, dup := findThickness(cols.Thickness, t); !dup {
				cols.Thickness[i] = t
			}
			used[i] = true
		}
	}
	if len(cols.Thickness) == 0 {
		cols.Value = resolveKey(header, l.Value, used)
	}
	return cols
}

func findThickness(m map[int]float64, t float64) (int, bool) {
	for i, v := range m {
		if v == t {
			return i, true
		}
	}
	return 0, false
}

func (c Columns) usable() bool {
	return len(c.Labels) > 0 && (len(c.Thickness) > 0 || c.Value >= 0)
}

// detectHeader: первая строка среди верхних, где есть и метки, и значения.
func detectHeader(rows [][]string, l Layout) (Columns, error) {
	if l.HeaderRow > 0 {
		idx := l.HeaderRow - 1
		if idx >= len(rows) {
			return Columns{}, fmt.Errorf("table: header row %d beyond %d rows", l.HeaderRow, len(rows))
		}
		cols := ScanHeader(rows[idx], l)
		cols.HeaderRow = idx
		return cols, cols.err()
	}
	for i := 0; i < len(rows) && i < headerProbeRows; i++ {
		cols := ScanHeader(rows[i], l)
		if cols.usable() {
			cols.HeaderRow = i
			return cols, nil
		}
	}
	if len(rows) == 0 {
		return Columns{}, ErrNoCategoryColumn
	}
	cols := ScanHeader(rows[0], l)
	return cols, cols.err()
}

func (c Columns) err() error {
	if len(c.Labels) == 0 {
		return ErrNoCategoryColumn
	}
	if len(c.Thickness) == 0 && c.Value < 0 {
		return ErrNoValueColumns
	}
	return nil
}

// Reshape: wide → long. Пустые и нечисловые ячейки отбрасываются (аналог dropna).
func Reshape(rows [][]string, l Layout) ([]model.Record, error) {
	cols, err := detectHeader(rows, l)
	if err != nil {
		return nil, err
	}
	header := rows[cols.HeaderRow]

	thick := make([]int, 0, len(cols.Thickness))
	for i := range cols.Thickness {
		thick = append(thick, i)
	}
	sort.Ints(thick)

	var out []model.Record
	for r := cols.HeaderRow + 1; r < len(rows); r++ {
		rec := rows[r]
		if looksLikeHeader(rec, header) {
			continue
		}
		labels := rowLabels(rec, cols.Labels)
		if len(labels) == 0 {
			continue
		}
		n := r - cols.HeaderRow - 1
		if len(thick) == 0 {
			if v, ok := cellNumber(rec, cols.Value); ok {
				out = append(out, model.Record{Row: n, Labels: labels, Value: v})
			}
			continue
		}
		for _, c := range thick {
			v, ok := cellNumber(rec, c)
			if !ok {
				continue
			}
			t := cols.Thickness[c]
			out = append(out, model.Record{Row: n, Labels: labels, Thickness: &t, Value: v})
		}
	}
	return out, nil
}

func rowLabels(rec []string, idx []int) []string {
	var out []string
	seen := map[string]bool{}
	for _, i := range idx {
		if i >= len(rec) {
			continue
		}
		v := strings.TrimSpace(rec[i])
		k := strings.ToLower(v)
		if v == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	return out
}

func cellNumber(rec []string, i int) (float64, bool) {
	if i < 0 || i >= len(rec) {
		return 0, false
	}
	v, ok := utils.ParseNumber(rec[i])
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
