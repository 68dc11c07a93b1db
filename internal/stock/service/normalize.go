package service

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Разделители размеров и «дюймовые» кавычки приводим к одному символу
var separators = strings.NewReplacer(
	"×", "x", "*", "x", "х", "x", "Х", "x", "✕", "x",
	"”", `"`, "“", `"`, "″", `"`, "′′", `"`, "''", `"`, "⁄", "/",
)

var (
	// 1 1/4" → 1.25"
	reMixedInch = regexp.MustCompile(`(\d+)\s+(\d+)\s*/\s*(\d+)\s*"`)
	// 3/4" → 0.75"
	reFracInch = regexp.MustCompile(`(\d+)\s*/\s*(\d+)\s*"`)
	// 2 inch / 2 inches → 2"
	reInchWord = regexp.MustCompile(`(\d)\s*inch(?:es)?\b`)
	// 40.00 → 40, 1.60 → 1.6
	reDecimal = regexp.MustCompile(`\d+\.\d+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// foldCategory: NFKC, нижний регистр, единый разделитель x, дюймы в десятичном виде.
// Пробелы схлопываются, но не удаляются (нужны для разбиения на под-токены).
func foldCategory(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = separators.Replace(s)
	s = reInchWord.ReplaceAllString(s, `$1"`)
	s = reMixedInch.ReplaceAllStringFunc(s, func(m string) string {
		p := reMixedInch.FindStringSubmatch(m)
		whole, _ := strconv.Atoi(p[1])
		return fracString(float64(whole), p[2], p[3]) + `"`
	})
	s = reFracInch.ReplaceAllStringFunc(s, func(m string) string {
		p := reFracInch.FindStringSubmatch(m)
		return fracString(0, p[1], p[2]) + `"`
	})
	s = reDecimal.ReplaceAllStringFunc(s, func(m string) string {
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return m
		}
		return fmtNum(f)
	})
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// normalizeCategory дает ключ сравнения (foldCategory без пробелов).
func normalizeCategory(s string) string {
	return strings.ReplaceAll(foldCategory(s), " ", "")
}

func fracString(whole float64, num, den string) string {
	n, _ := strconv.Atoi(num)
	d, _ := strconv.Atoi(den)
	if d == 0 {
		return fmtNum(whole) + " " + num + "/" + den
	}
	return fmtNum(whole + float64(n)/float64(d))
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// маркеры нотаций сами по себе ничего не говорят о категории
var markers = map[string]bool{
	"nb": true, "od": true, "mm": true, "inch": true, "in": true,
	"pipe": true, "tube": true, "x": true, `"`: true,
}

// splitToken режет токен на под-токены по x / , " и пробелам.
func splitToken(s string) []string {
	f := strings.FieldsFunc(foldCategory(s), func(r rune) bool {
		switch r {
		case 'x', '/', ',', '"', ' ', '\t':
			return true
		}
		return false
	})
	out := make([]string, 0, len(f))
	for _, p := range f {
		if p == "" || markers[p] {
			continue
		}
		out = append(out, p)
	}
	return out
}
