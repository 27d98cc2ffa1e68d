// Package ingredient 從自由文字中擷取並正規化食材名稱
package ingredient

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// MaxIngredients 單次解析最多回傳的食材數
	MaxIngredients = 20
	// maxAlternatives 每個食材最多建議的相近詞彙數
	maxAlternatives = 3
	minLineLength   = 3
	minNameLength   = 3
)

// Detail 帶有分類資訊的解析結果
type Detail struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	IsCommon     bool     `json:"is_common"`
	Alternatives []string `json:"alternatives"`
}

var (
	numberedMarker = regexp.MustCompile(`^[0-9]+\.$`)

	leadingFraction  = regexp.MustCompile(`^\d+/\d+\s?`)
	leadingNumber    = regexp.MustCompile(`^\d+\.?\d*\s?`)
	interiorFraction = regexp.MustCompile(`\s\d+/\d+\s`)
	interiorNumber   = regexp.MustCompile(`\s\d+\.?\d*\s`)
	standaloneNumber = regexp.MustCompile(`\b\d+\b`)

	unitPattern        = wordPattern(units)
	preparationPattern = wordPattern(preparations)
	measurementPattern = wordPattern(measurements)

	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	bracketed     = regexp.MustCompile(`\[[^\]]*\]`)

	trailingSeparator = regexp.MustCompile(`[,;].*$`)
	trailingPhrase    = regexp.MustCompile(`(?i)\b(optional|divided|as needed|to taste).*$`)

	conjunction = regexp.MustCompile(`\s+(?:and|or|with|plus)\s+`)
	whitespace  = regexp.MustCompile(`\s+`)
	article     = regexp.MustCompile(`(?i)\b(?:a|an|the)\s+`)
)

// wordPattern 將詞彙編譯為整詞比對的正規表示式
func wordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Parse 從多行文字中擷取去重、正規化後的食材清單
func Parse(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	seen := make(map[string]struct{})
	var parsed []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if skipLine(line) {
			continue
		}
		name := parseLine(line)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		parsed = append(parsed, name)
	}

	return prioritize(parsed)
}

// ParseWithDetails 解析並附上分類、常見度與相近詞彙
func ParseWithDetails(text string) []Detail {
	names := Parse(text)
	details := make([]Detail, 0, len(names))
	for _, name := range names {
		details = append(details, Detail{
			Name:         name,
			Category:     Category(name),
			IsCommon:     IsCommon(name),
			Alternatives: SuggestAlternatives(name),
		})
	}
	return details
}

func skipLine(line string) bool {
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return true
	}
	if numberedMarker.MatchString(line) {
		return true
	}
	return utf8.RuneCountInString(line) < minLineLength
}

// parseLine 依固定順序清理單行，無法解析時回傳空字串
func parseLine(line string) string {
	cleaned := strings.ToLower(line)
	cleaned = removeQuantities(cleaned)
	cleaned = strings.TrimSpace(unitPattern.ReplaceAllString(cleaned, ""))
	cleaned = strings.TrimSpace(preparationPattern.ReplaceAllString(cleaned, ""))
	cleaned = strings.TrimSpace(measurementPattern.ReplaceAllString(cleaned, ""))
	cleaned = removeParentheticals(cleaned)
	cleaned = removeTrailingModifiers(cleaned)

	head := extractMain(cleaned)
	if head == "" {
		return ""
	}
	return Normalize(head)
}

func removeQuantities(text string) string {
	text = leadingFraction.ReplaceAllString(text, "")
	text = leadingNumber.ReplaceAllString(text, "")
	text = interiorFraction.ReplaceAllString(text, " ")
	text = interiorNumber.ReplaceAllString(text, " ")
	text = standaloneNumber.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func removeParentheticals(text string) string {
	text = parenthetical.ReplaceAllString(text, "")
	text = bracketed.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func removeTrailingModifiers(text string) string {
	text = trailingSeparator.ReplaceAllString(text, "")
	text = trailingPhrase.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// extractMain 取連接詞前的第一段；非常見食材只保留最具體的字詞
func extractMain(text string) string {
	if text == "" {
		return ""
	}

	head := strings.TrimSpace(conjunction.Split(text, -1)[0])
	if head == "" {
		return ""
	}
	if IsCommon(head) {
		return head
	}

	var words []string
	for _, w := range strings.Fields(head) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	// 末兩字通常是描述片語中最具體的部分
	if len(words) <= 3 {
		return strings.Join(words, " ")
	}
	return strings.Join(words[len(words)-2:], " ")
}

// Normalize 小寫、合併空白、移除冠詞
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = whitespace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = article.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// prioritize 常見食材優先，其次依字母排序，並截斷數量
func prioritize(names []string) []string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if utf8.RuneCountInString(n) >= minNameLength {
			kept = append(kept, n)
		}
	}

	col := collate.New(language.English)
	sort.SliceStable(kept, func(i, j int) bool {
		ci, cj := IsCommon(kept[i]), IsCommon(kept[j])
		if ci != cj {
			return ci
		}
		return col.CompareString(kept[i], kept[j]) < 0
	})

	if len(kept) > MaxIngredients {
		kept = kept[:MaxIngredients]
	}
	return kept
}

// IsCommon 是否與常見詞彙互相包含
func IsCommon(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range commonIngredients {
		if strings.Contains(name, c) || strings.Contains(c, name) {
			return true
		}
	}
	return false
}

// SuggestAlternatives 回傳最多三個相近的常見詞彙
func SuggestAlternatives(name string) []string {
	out := []string{}
	if name == "" {
		return out
	}
	for _, c := range commonIngredients {
		if strings.Contains(c, name) || strings.Contains(name, c) {
			out = append(out, c)
			if len(out) == maxAlternatives {
				break
			}
		}
	}
	return out
}

// Category 判斷食材分類，無法判斷時為 other
func Category(name string) string {
	if name == "" {
		return "other"
	}
	for _, cat := range categories {
		for _, item := range cat.items {
			if strings.Contains(name, item) || strings.Contains(item, name) {
				return cat.name
			}
		}
	}
	return "other"
}

// Validate 檢查字串是否可作為食材：長度、字母比例、非停用詞
func Validate(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}

	total, alpha := 0, 0
	for _, r := range name {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			alpha++
		}
	}
	if float64(alpha)/float64(total) < 0.6 {
		return false
	}

	_, stop := stopWords[strings.ToLower(name)]
	return !stop
}
