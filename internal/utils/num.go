package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rxKeepNums      = regexp.MustCompile(`[^\d\.\-]`)
	rxCommaThousand = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
	rxFirstNumber   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// ParseNumber парсит "1,234.50", "1 234,5", "197 ,00", "2.5 MT" (NBSP/NNBSP) и т.п.
// Запятая: десятичный разделитель, если это не группы тысяч ("1,234").
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// убрать неразрывные/узкие пробелы и обычные пробелы
	repl := strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "", "\t", "")
	s = repl.Replace(s)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	switch {
	case rxCommaThousand.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// "1.234,5": последняя точка/запятая десятичная
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	default:
		s = strings.ReplaceAll(s, ",", ".")
	}
	// оставить только цифры, точку и минус (на случай мусора вроде "MT")
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// FirstNumber достает первое число из заголовка вида "Thk 1,6 mm" или "2.0".
func FirstNumber(s string) (float64, bool) {
	m := rxFirstNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
	return f, err == nil
}

func FloatPtr(v float64) *float64 { return &v }
