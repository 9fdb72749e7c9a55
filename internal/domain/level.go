package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Шкала уровней владения компетенцией
const (
	LevelBeginner     = 1
	LevelIntermediate = 2
	LevelConfirmed    = 3
	LevelSenior       = 4
	LevelExpert       = 5

	// DefaultLevelRank ранг пустого или нераспознанного уровня
	DefaultLevelRank = LevelIntermediate
)

// levelKeywords порядок важен: первое совпадение определяет ранг
var levelKeywords = []struct {
	tokens []string
	rank   int
}{
	{[]string{"debut", "junior", "apprenti"}, LevelBeginner},
	{[]string{"maitr", "inter"}, LevelIntermediate},
	{[]string{"confirm"}, LevelConfirmed},
	{[]string{"senior"}, LevelSenior},
	{[]string{"expert"}, LevelExpert},
}

// LevelRank переводит свободный текст уровня ("Débutant", "CONFIRMÉ", "expert SQL")
// в порядковую шкалу 1..5. Регистр и диакритика игнорируются
func LevelRank(label string) int {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return DefaultLevelRank
	}

	for _, kw := range levelKeywords {
		for _, token := range kw.tokens {
			if strings.Contains(normalized, token) {
				return kw.rank
			}
		}
	}

	return DefaultLevelRank
}

// NormalizeLabel приводит строку к нижнему регистру без диакритики и лишних пробелов
func NormalizeLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
