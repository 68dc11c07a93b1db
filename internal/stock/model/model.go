package model

import (
	"sort"
	"strings"
)

// Единица количества в файле остатков (настройка сессии, не строки)
type Unit string

const (
	UnitTons   Unit = "tons"
	UnitKg     Unit = "kg"
	UnitPieces Unit = "pieces"
)

// ParseUnit понимает "MT", "tons", "kg", "pcs" и т.п.; неизвестное → tons.
func ParseUnit(s string) Unit {
	switch normUnit(s) {
	case "kg", "kgs", "kilogram", "kilograms", "кг":
		return UnitKg
	case "pcs", "pc", "pieces", "piece", "nos", "no", "шт":
		return UnitPieces
	default:
		return UnitTons
	}
}

func normUnit(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "().[] ")
	return s
}

// Что хранится в ячейке справочника
type ValueKind string

const (
	KindWidth ValueKind = "width" // ширина штрипса, мм
	KindMass  ValueKind = "mass"  // масса трубы, кг
)

// Cell: одна пара «толщина → значение» длинного формата.
type Cell struct {
	Thickness float64 `json:"thickness"`
	Value     float64 `json:"value"`
}

// Series: общая часть строк справочника и остатков.
type Series struct {
	Category string   `json:"category"` // первая непустая метка, для показа
	Labels   []string `json:"labels"`   // метки во всех нотациях (мм, NB, OD, дюймы)
	Cells    []Cell   `json:"cells"`    // по возрастанию толщины
	Flat     *float64 `json:"flat,omitempty"`
}

func (s Series) Thicknesses() []float64 {
	out := make([]float64, len(s.Cells))
	for i, c := range s.Cells {
		out[i] = c.Thickness
	}
	return out
}

// Lookup возвращает значение при точной толщине. Для плоских строк (без оси толщин) это Flat.
func (s Series) Lookup(t float64) (float64, bool) {
	if len(s.Cells) == 0 {
		if s.Flat != nil {
			return *s.Flat, true
		}
		return 0, false
	}
	i := sort.Search(len(s.Cells), func(i int) bool { return s.Cells[i].Thickness >= t })
	if i < len(s.Cells) && s.Cells[i].Thickness == t {
		return s.Cells[i].Value, true
	}
	return 0, false
}

// IsFlat: у строки нет оси толщин (один столбец значения).
func (s Series) IsFlat() bool { return len(s.Cells) == 0 && s.Flat != nil }

type ReferenceRow struct {
	Series
	Kind ValueKind `json:"kind"`
}

type StockRow struct {
	Series
}

// Tables: всё, что нужно движку. Weight может быть пустым.
type Tables struct {
	Weight []ReferenceRow
	Width  []ReferenceRow
	Stock  []StockRow
}

// Record: длинная запись {category, thickness, value} после разворота широкой таблицы.
type Record struct {
	Row       int      // порядковый номер исходной строки (0-based, после шапки)
	Labels    []string // метки категории
	Thickness *float64 // nil для плоских таблиц
	Value     float64
}

type Options struct {
	StockUnit       Unit    // единица файла остатков
	MassFactor      float64 // K в mass = K * width * thickness
	ExactThickness  bool    // только точная толщина; по умолчанию берется ближайшая
	EnableFuzzy     bool    // нечеткий поиск категории, если ничего не нашлось
	FuzzyThreshold  float64 // порог схожести для fuzzy (0..1)
	WeightTolerance float64 // кг; >0: подбирать толщину по заявленной массе
}

// Способ, которым выбрана толщина/масса. Только для показа.
type Provenance string

const (
	ProvExact        Provenance = "exact"
	ProvNearest      Provenance = "nearest"
	ProvThinnest     Provenance = "thinnest"
	ProvDeclaredMass Provenance = "declared_mass"
	ProvWeightMatch  Provenance = "weight_match"
)

// Способ сопоставления категории
type MatchMethod string

const (
	MatchExact    MatchMethod = "exact"
	MatchContains MatchMethod = "contains"
	MatchSplit    MatchMethod = "split"
	MatchFuzzy    MatchMethod = "fuzzy"
)

// Нотация категории в запросе
type Notation string

const (
	NotationMM   Notation = "mm"
	NotationNB   Notation = "nb"
	NotationOD   Notation = "od"
	NotationInch Notation = "inch"
	NotationText Notation = "text"
)

type ParsedQuery struct {
	Raw       string   `json:"raw"`
	Category  string   `json:"category"`
	Notation  Notation `json:"notation"`
	Thickness *float64 `json:"thickness_mm,omitempty"`
	Mass      *float64 `json:"mass_kg,omitempty"`
	Qty       *int     `json:"qty,omitempty"`
}

type Verdict string

const (
	Available    Verdict = "available"
	Low          Verdict = "low"
	NotAvailable Verdict = "not_available"
)

type Availability struct {
	StockRaw  float64  `json:"stock_raw"`
	StockKg   *float64 `json:"stock_kg,omitempty"`
	Pieces    float64  `json:"available_qty"`
	Verdict   Verdict  `json:"verdict"`
	Remaining *float64 `json:"remaining_qty,omitempty"`
}

// MatchResult: выбранная пара строк справочника/остатков и производные значения.
type MatchResult struct {
	Reference  *ReferenceRow `json:"-"`
	Stock      *StockRow     `json:"-"`
	Category   string        `json:"matched_category"`
	Method     MatchMethod   `json:"match_method"`
	Thickness  *float64      `json:"resolved_thickness_mm,omitempty"`
	StripWidth *float64      `json:"strip_width_mm,omitempty"`
	Mass       *float64      `json:"mass_per_item_kg,omitempty"`
	Provenance Provenance    `json:"provenance,omitempty"`
}

type Result struct {
	Query     ParsedQuery `json:"query"`
	Requested int         `json:"requested_qty"`
	MatchResult
	Availability
	Outcome string `json:"outcome"`
}

// TableRow: строка объединенной таблицы для показа/выгрузки.
type TableRow struct {
	Category   string   `json:"category"`
	Thickness  *float64 `json:"thickness_mm,omitempty"`
	StripWidth *float64 `json:"strip_width_mm,omitempty"`
	Mass       *float64 `json:"mass_kg,omitempty"`
	Stock      float64  `json:"stock"`
	Unit       Unit     `json:"unit"`
	Pieces     *float64 `json:"pieces,omitempty"`
}

type TableFilter struct {
	Query     string   // токен категории (свободный текст)
	Thickness *float64 // точная толщина
	InStock   bool     // только ненулевые остатки
}
