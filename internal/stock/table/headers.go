package table

import (
	"regexp"
	"strings"
)

var rxNotWord = regexp.MustCompile(`[^\p{L}\p{N}.]+`)

// нормализуем имя колонки: нижний регистр, убираем служ.символы/множественные пробелы
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е").Replace(s) // NBSP/NNBSP
	s = rxNotWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func splitAlts(want string) []string {
	var out []string
	for _, a := range strings.Split(want, "|") {
		if n := normHeaderKey(a); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// hasWords: все слова want встречаются в key как отдельные слова
// ("pipe category in nb or od or mm" содержит "pipe category" и "nb", но "good" не содержит "od").
func hasWords(key, want string) bool {
	return strings.Contains(" "+key+" ", " "+want+" ")
}

// matchesAny: заголовок подходит под одну из альтернатив
func matchesAny(header string, alts []string) bool {
	nk := normHeaderKey(header)
	if nk == "" {
		return false
	}
	for _, a := range alts {
		if nk == a || hasWords(nk, a) {
			return true
		}
	}
	return false
}

// resolveKey ищет индекс колонки по желаемому имени.
// Поддерживает варианты через "|" (например: "Stock|Qty|MT"); -1, если не нашли.
func resolveKey(headers []string, want string, skip map[int]bool) int {
	alts := splitAlts(want)
	if len(alts) == 0 {
		return -1
	}
	// 1) точное совпадение по нормализованному
	for _, a := range alts {
		for i, h := range headers {
			if !skip[i] && normHeaderKey(h) == a {
				return i
			}
		}
	}
	// 2) частичное: want ⊂ key по словам, побеждает самая длинная альтернатива
	best, bestScore := -1, 0
	for i, h := range headers {
		if skip[i] {
			continue
		}
		nk := normHeaderKey(h)
		score := 0
		for _, a := range alts {
			if hasWords(nk, a) && len(a) > score {
				score = len(a)
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// looksLikeHeader: повтор шапки внутри данных (частое явление при склейке листов)
func looksLikeHeader(rec, headers []string) bool {
	cnt := 0
	for i, v := range rec {
		if i < len(headers) && v != "" && normHeaderKey(v) == normHeaderKey(headers[i]) {
			cnt++
		}
	}
	return cnt >= 2
}
