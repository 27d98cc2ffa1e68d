// Package substitution 提供食材替代關係查詢與品質分級
package substitution

import (
	"strings"
	"sync"
)

// Quality 替代品質分級
type Quality string

const (
	Excellent Quality = "excellent"
	Good      Quality = "good"
	Fair      Quality = "fair"
)

// Option 單一替代建議
type Option struct {
	Ingredient string  `json:"ingredient"`
	Quality    Quality `json:"quality"`
}

// Reverse 此食材可替代的原料
type Reverse struct {
	Original string  `json:"original"`
	Quality  Quality `json:"quality"`
}

// Suggestions 某食材的完整替代建議
type Suggestions struct {
	Ingredient       string    `json:"ingredient"`
	Substitutions    []Option  `json:"substitutions"`
	CanSubstituteFor []Reverse `json:"can_substitute_for"`
}

// Graph 唯讀的替代關係表，建立後不再變動，可並發讀取
type Graph struct {
	entries []entry
	index   map[string]int
	quality map[[2]string]Quality
}

var defaultGraph = sync.OnceValue(func() *Graph {
	return newGraph(defaultTable)
})

// Default 回傳內建替代表
func Default() *Graph {
	return defaultGraph()
}

// newGraph 由有序表格建立替代圖，重複的原料以先出現者為準
func newGraph(table []entry) *Graph {
	g := &Graph{
		entries: make([]entry, 0, len(table)),
		index:   make(map[string]int, len(table)),
		quality: make(map[[2]string]Quality),
	}
	for _, e := range table {
		key := normalize(e.original)
		if _, exists := g.index[key]; exists {
			continue
		}
		subs := make([]string, 0, len(e.substitutes))
		for _, s := range e.substitutes {
			subs = append(subs, normalize(s))
		}
		g.index[key] = len(g.entries)
		g.entries = append(g.entries, entry{original: key, substitutes: subs})
	}

	// 先寫入的分級優先
	for _, tier := range curated {
		for _, p := range tier.pairs {
			k := pairKey(p[0], p[1])
			if _, exists := g.quality[k]; !exists {
				g.quality[k] = tier.quality
			}
		}
	}
	return g
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func pairKey(a, b string) [2]string {
	a, b = normalize(a), normalize(b)
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Len 原料數量
func (g *Graph) Len() int {
	return len(g.entries)
}

// Originals 依表格順序回傳所有原料
func (g *Graph) Originals() []string {
	out := make([]string, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.original
	}
	return out
}

// Substitutions 直接查詢某原料的替代食材，未知時回傳空切片
func (g *Graph) Substitutions(ingredient string) []string {
	i, ok := g.index[normalize(ingredient)]
	if !ok {
		return []string{}
	}
	subs := g.entries[i].substitutes
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// PossibleSubstitutes 正向替代與反向掃描（哪些原料可被此食材替代）的聯集，保持順序且去重
func (g *Graph) PossibleSubstitutes(ingredient string) []string {
	key := normalize(ingredient)
	out := g.Substitutions(key)
	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		seen[s] = struct{}{}
	}

	for _, e := range g.entries {
		for _, s := range e.substitutes {
			if s != key {
				continue
			}
			if _, dup := seen[e.original]; !dup {
				seen[e.original] = struct{}{}
				out = append(out, e.original)
			}
			break
		}
	}
	return out
}

// Quality 查詢替代品質，配對不分方向，未列出者視為 good
func (g *Graph) Quality(original, substitute string) Quality {
	if q, ok := g.quality[pairKey(original, substitute)]; ok {
		return q
	}
	return Good
}

// Bulk 批次查詢多個食材的直接替代
func (g *Graph) Bulk(ingredients []string) map[string][]string {
	out := make(map[string][]string, len(ingredients))
	for _, ing := range ingredients {
		out[ing] = g.Substitutions(ing)
	}
	return out
}

// Suggest 回傳某食材的替代選項與其可替代的原料，皆附品質
func (g *Graph) Suggest(ingredient string) Suggestions {
	key := normalize(ingredient)
	s := Suggestions{
		Ingredient:       key,
		Substitutions:    []Option{},
		CanSubstituteFor: []Reverse{},
	}
	for _, sub := range g.Substitutions(key) {
		s.Substitutions = append(s.Substitutions, Option{Ingredient: sub, Quality: g.Quality(key, sub)})
	}
	for _, orig := range g.PossibleSubstitutes(key) {
		s.CanSubstituteFor = append(s.CanSubstituteFor, Reverse{Original: orig, Quality: g.Quality(orig, key)})
	}
	return s
}
