package service

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/utils"
)

const num = `(\d+(?:\.\d+)?)`

var (
	rePieces  = regexp.MustCompile(`\b(\d+)\s*(?:pcs|pieces|piece|pc|nos)\b`)
	reMass    = regexp.MustCompile(num + `\s*(?:kgs|kg|kilograms|kilogram|kilos|kilo)\b`)
	reThick   = regexp.MustCompile(num + `\s*mm\b`)
	reInch    = regexp.MustCompile(`(\d+\s+\d+\s*/\s*\d+|\d+\s*/\s*\d+|\d+(?:\.\d+)?)\s*(?:"|inch(?:es)?\b)`)
	rePair    = regexp.MustCompile(num + `\s*(?:mm)?\s*x\s*` + num + `(?:\s*(?:mm)?\s*x\s*` + num + `)?`)
	reNBAfter = regexp.MustCompile(num + `\s*(nb|od)\b`)
	reNBFirst = regexp.MustCompile(`\b(nb|od)\s*` + num)
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}.]+`)
	reBareInt = regexp.MustCompile(`^\d+$`)
	reBareDec = regexp.MustCompile(`^\d+\.\d+$`)
)

// ParseQuery разбирает свободный текст ("40x40 1.6mm", "25 NB 3kg", `0.75" 1.2mm`)
// в структурированный запрос. Ошибок нет: чего не нашли, то nil.
func ParseQuery(text string) model.ParsedQuery {
	q := model.ParsedQuery{Raw: text, Notation: model.NotationText}
	rest := prepareQuery(text)

	// штуки: "500 pcs", "20 nos"
	if m, ok := cut(&rest, rePieces); ok {
		if n, err := strconv.Atoi(m[1]); err == nil {
			q.Qty = &n
		}
	}
	// 1) масса
	if m, ok := cut(&rest, reMass); ok {
		q.Mass = parseFloat(m[1])
	}
	// 2) толщина; при заявленной массе тоже берем, обе остаются
	if loc := findThickness(rest); loc != nil {
		q.Thickness = parseFloat(rest[loc[2]:loc[3]])
		rest = rest[:loc[0]] + " " + rest[loc[1]:]
	}

	structured := true
	switch {
	// 3) дюймы
	case matchInch(&rest, &q):
	// 4) WxH / WxHxT
	case matchPair(&rest, &q):
	// 5) NB / OD
	case matchBore(&rest, &q):
	default:
		structured = false
		// 6) остаток или исходный текст
		q.Category = strings.Join(strings.Fields(reNonWord.ReplaceAllString(rest, " ")), " ")
		if q.Category == "" {
			q.Category = text
		}
	}

	if structured {
		leftovers(rest, &q)
	}
	return q
}

// "," в запросе только разделитель, не десятичная запятая
func prepareQuery(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = separators.Replace(s)
	return s
}

func cut(rest *string, re *regexp.Regexp) ([]string, bool) {
	loc := re.FindStringSubmatchIndex(*rest)
	if loc == nil {
		return nil, false
	}
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = (*rest)[loc[2*i]:loc[2*i+1]]
		}
	}
	*rest = (*rest)[:loc[0]] + " " + (*rest)[loc[1]:]
	return m, true
}

// findThickness: первое "N mm", которое не является стороной WxH ("40x40mm") и не частью "20mm OD".
func findThickness(s string) []int {
	for _, loc := range reThick.FindAllStringSubmatchIndex(s, -1) {
		before := strings.TrimRight(s[:loc[0]], " ")
		after := strings.TrimLeft(s[loc[1]:], " ")
		if strings.HasSuffix(before, "x") || strings.HasPrefix(after, "x") {
			continue
		}
		if strings.HasPrefix(after, "nb") || strings.HasPrefix(after, "od") {
			continue
		}
		return loc
	}
	return nil
}

func matchInch(rest *string, q *model.ParsedQuery) bool {
	for _, loc := range reInch.FindAllStringSubmatchIndex(*rest, -1) {
		// `40x40"`: это сторона WxH в кавычках, а не дюймы
		if strings.HasSuffix(strings.TrimRight((*rest)[:loc[0]], " "), "x") {
			continue
		}
		v, ok := inchValue((*rest)[loc[2]:loc[3]])
		if !ok {
			continue
		}
		*rest = (*rest)[:loc[0]] + " " + (*rest)[loc[1]:]
		q.Category = fmtNum(v) + `"`
		q.Notation = model.NotationInch
		return true
	}
	return false
}

// inchValue: "0.75", "3/4", "1 1/4"
func inchValue(s string) (float64, bool) {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "/", " / ")), " ")
	parts := strings.Split(s, " ")
	switch len(parts) {
	case 1:
		f, err := strconv.ParseFloat(parts[0], 64)
		return f, err == nil
	case 3: // n / d
		n, err1 := strconv.ParseFloat(parts[0], 64)
		d, err2 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	case 4: // w n / d
		w, err0 := strconv.ParseFloat(parts[0], 64)
		n, err1 := strconv.ParseFloat(parts[1], 64)
		d, err2 := strconv.ParseFloat(parts[3], 64)
		if err0 != nil || err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return w + n/d, true
	}
	return 0, false
}

func matchPair(rest *string, q *model.ParsedQuery) bool {
	m, ok := cut(rest, rePair)
	if !ok {
		return false
	}
	w, h := parseFloat(m[1]), parseFloat(m[2])
	if w == nil || h == nil {
		return false
	}
	q.Category = fmtNum(*w) + "x" + fmtNum(*h)
	q.Notation = model.NotationMM
	if m[3] != "" && q.Thickness == nil {
		q.Thickness = parseFloat(m[3])
	}
	return true
}

func matchBore(rest *string, q *model.ParsedQuery) bool {
	if m, ok := cut(rest, reNBAfter); ok {
		q.Category, q.Notation = boreCategory(m[1], m[2])
		return true
	}
	if m, ok := cut(rest, reNBFirst); ok {
		q.Category, q.Notation = boreCategory(m[2], m[1])
		return true
	}
	return false
}

func boreCategory(n, marker string) (string, model.Notation) {
	if f := parseFloat(n); f != nil {
		n = fmtNum(*f)
	}
	if marker == "od" {
		return n + " OD", model.NotationOD
	}
	return n + " NB", model.NotationNB
}

// leftovers: одиночное целое в хвосте это штуки, одиночная десятичная это толщина без "mm".
func leftovers(rest string, q *model.ParsedQuery) {
	f := strings.Fields(reNonWord.ReplaceAllString(rest, " "))
	var nums []string
	for _, t := range f {
		t = strings.Trim(t, ".")
		if reBareInt.MatchString(t) || reBareDec.MatchString(t) {
			nums = append(nums, t)
		}
	}
	switch len(nums) {
	case 1:
		switch {
		case reBareInt.MatchString(nums[0]) && q.Qty == nil:
			if n, err := strconv.Atoi(nums[0]); err == nil {
				q.Qty = &n
			}
		case reBareDec.MatchString(nums[0]) && q.Thickness == nil:
			q.Thickness = parseFloat(nums[0])
		}
	case 2:
		// "40x40 1.6 500": десятичная, толщина, целое, штуки
		a, b := nums[0], nums[1]
		if reBareDec.MatchString(a) && reBareInt.MatchString(b) && q.Thickness == nil && q.Qty == nil {
			q.Thickness = parseFloat(a)
			if n, err := strconv.Atoi(b); err == nil {
				q.Qty = &n
			}
		}
	}
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return utils.FloatPtr(f)
}
