package service

import (
	"sort"
	"strings"

	"pipe-stock/internal/stock/model"
)

// Index: поиск строки таблицы по токену категории.
// Строки: в исходном порядке таблицы; при нескольких совпадениях побеждает первая.
type Index struct {
	raw     [][]string                  // исходные метки строк
	norm    [][]string                  // нормализованные метки
	byLabel map[string][]int            // нормализованная метка -> строки (по возрастанию)
	inv     map[string]map[int]struct{} // trigram -> set(row), только для fuzzy

	fuzzy     bool
	threshold float64
}

type Hit struct {
	Row    int
	Label  string
	Method model.MatchMethod
	Score  *float64 // только для fuzzy
}

func NewIndex(labels [][]string, fuzzy bool, threshold float64) *Index {
	idx := &Index{
		raw:       labels,
		norm:      make([][]string, len(labels)),
		byLabel:   make(map[string][]int),
		inv:       make(map[string]map[int]struct{}),
		fuzzy:     fuzzy,
		threshold: threshold,
	}
	for row, ls := range labels {
		for _, l := range ls {
			nl := normalizeCategory(l)
			idx.norm[row] = append(idx.norm[row], nl)
			if nl == "" {
				continue
			}
			if rows := idx.byLabel[nl]; len(rows) == 0 || rows[len(rows)-1] != row {
				idx.byLabel[nl] = append(rows, row)
			}
			if !fuzzy {
				continue
			}
			for _, g := range grams(nl) {
				bucket, ok := idx.inv[g]
				if !ok {
					bucket = make(map[int]struct{})
					idx.inv[g] = bucket
				}
				bucket[row] = struct{}{}
			}
		}
	}
	return idx
}

func referenceLabels(rows []model.ReferenceRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Labels
	}
	return out
}

func stockLabels(rows []model.StockRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Labels
	}
	return out
}

func (idx *Index) Len() int { return len(idx.norm) }

// Match: exact → contains (в обе стороны) → под-токены → fuzzy (если включен).
func (idx *Index) Match(token string) (Hit, bool) {
	nt := normalizeCategory(token)
	if nt == "" {
		return Hit{}, false
	}

	// (1) точное совпадение нормализованной метки
	if rows := idx.byLabel[nt]; len(rows) > 0 {
		return idx.hit(rows[0], nt, model.MatchExact), true
	}

	// (2) вхождение
	if h, ok := idx.contains(nt, model.MatchContains); ok {
		return h, true
	}

	// (3) разбиение на под-токены, первый найденный побеждает
	for _, sub := range splitToken(token) {
		if sub == nt {
			continue
		}
		if h, ok := idx.contains(sub, model.MatchSplit); ok {
			return h, true
		}
	}

	// (4) fuzzy
	if idx.fuzzy {
		return idx.fuzzyMatch(nt)
	}
	return Hit{}, false
}

// MatchAll возвращает все строки, подходящие под токен (для фильтра таблицы), в исходном порядке.
func (idx *Index) MatchAll(token string) []int {
	nt := normalizeCategory(token)
	if nt == "" {
		return nil
	}
	var out []int
	for row, ls := range idx.norm {
		for _, l := range ls {
			if l == nt || containsEither(l, nt) {
				out = append(out, row)
				break
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	if h, ok := idx.Match(token); ok {
		return []int{h.Row}
	}
	return nil
}

func (idx *Index) contains(token string, method model.MatchMethod) (Hit, bool) {
	for row, ls := range idx.norm {
		for _, l := range ls {
			if containsEither(l, token) {
				return idx.hit(row, l, method), true
			}
		}
	}
	return Hit{}, false
}

// containsEither: вхождение в любую сторону; вложенная строка не короче двух символов,
// иначе метка "1" совпадет почти с чем угодно.
func containsEither(label, token string) bool {
	if label == "" || token == "" {
		return false
	}
	if len(token) >= 2 && strings.Contains(label, token) {
		return true
	}
	return len(label) >= 2 && strings.Contains(token, label)
}

func (idx *Index) hit(row int, norm string, method model.MatchMethod) Hit {
	h := Hit{Row: row, Method: method}
	for i, nl := range idx.norm[row] {
		if nl == norm {
			h.Label = idx.raw[row][i]
			return h
		}
	}
	if len(idx.raw[row]) > 0 {
		h.Label = idx.raw[row][0]
	}
	return h
}

func (idx *Index) fuzzyMatch(nt string) (Hit, bool) {
	bestRow, bestLabel, best := -1, "", -1.0
	for _, row := range idx.candidateRows(nt) {
		for _, l := range idx.norm[row] {
			if s := similarity(nt, l); s > best {
				bestRow, bestLabel, best = row, l, s
			}
		}
	}
	if bestRow < 0 || best < idx.threshold {
		return Hit{}, false
	}
	h := idx.hit(bestRow, bestLabel, model.MatchFuzzy)
	h.Score = &best
	return h, true
}

// grams режет метку на символьные триграммы (с пробелом по краям), без повторов.
func grams(label string) []string {
	if label == "" {
		return nil
	}
	r := []rune(" " + label + " ")
	out := make([]string, 0, len(r)-2)
	seen := make(map[string]bool, len(r))
	for end := 3; end <= len(r); end++ {
		g := string(r[end-3 : end])
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func (idx *Index) candidateRows(norm string) []int {
	seen := make(map[int]struct{})
	for _, g := range grams(norm) {
		for row := range idx.inv[g] {
			seen[row] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for row := range seen {
		out = append(out, row)
	}
	sort.Ints(out) // для детерминированного порядка
	return out
}

func similarity(a, b string) float64 {
	// normalized Damerau-Levenshtein similarity in [0..1]
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	return 1 - float64(d)/float64(m)
}
