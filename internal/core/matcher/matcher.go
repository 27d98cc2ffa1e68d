// Package matcher 依使用者現有食材為食譜評分、篩選與排序
package matcher

import (
	"math"
	"sort"
	"strings"

	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/substitution"
)

const (
	jaccardWeight  = 0.3
	coverageWeight = 0.7
	// fairPenalty 每個 fair 等級替代的扣分
	fairPenalty = 0.1
)

// Substitution 一次替代紀錄：以 Substitute 取代食譜中的 Original
type Substitution struct {
	Original   string               `json:"original"`
	Substitute string               `json:"substitute"`
	Quality    substitution.Quality `json:"quality"`
}

// Result 食譜與其比對結果
type Result struct {
	catalog.Recipe
	MatchScore           float64        `json:"match_score"`
	MatchPercentage      int            `json:"match_percentage"`
	MatchedIngredients   []string       `json:"matched_ingredients"`
	MissingIngredients   []string       `json:"missing_ingredients"`
	SubstitutionsUsed    []Substitution `json:"substitutions_used"`
	DirectMatches        []string       `json:"direct_matches"`
	SubstitutionMatches  []string       `json:"substitution_matches"`
	HasPoorSubstitutions bool           `json:"has_poor_substitutions"`
}

// Matcher 無狀態的比對器，可並發使用
type Matcher struct {
	graph *substitution.Graph
}

// New 建立比對器，graph 為 nil 時使用內建替代表
func New(graph *substitution.Graph) *Matcher {
	if graph == nil {
		graph = substitution.Default()
	}
	return &Matcher{graph: graph}
}

func normalizeAll(in []string) *orderedSet {
	set := newOrderedSet(len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set.add(s)
		}
	}
	return set
}

// Match 為每道食譜評分後依選項篩選、排序並截斷；使用者食材為空時回傳空結果
func (m *Matcher) Match(user []string, recipes []catalog.Recipe, opts Options) []Result {
	owned := normalizeAll(user)
	if owned.len() == 0 {
		return []Result{}
	}

	results := make([]Result, 0, len(recipes))
	for _, r := range recipes {
		res := m.score(owned, r, opts.IncludeSubstitutions)
		if keep(res, opts) {
			results = append(results, res)
		}
	}

	sortResults(results, opts.SortBy)

	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Score 單一食譜評分，不套用任何篩選
func (m *Matcher) Score(user []string, recipe catalog.Recipe, includeSubstitutions bool) Result {
	return m.score(normalizeAll(user), recipe, includeSubstitutions)
}

func (m *Matcher) score(owned *orderedSet, recipe catalog.Recipe, includeSubs bool) Result {
	required := normalizeAll(recipe.Ingredients)

	direct := newOrderedSet(owned.len())
	for _, u := range owned.items {
		if required.has(u) {
			direct.add(u)
		}
	}

	subMatches := newOrderedSet(0)
	var used []Substitution
	seen := make(map[Substitution]struct{})
	record := func(original, substitute string) {
		s := Substitution{
			Original:   original,
			Substitute: substitute,
			Quality:    m.graph.Quality(original, substitute),
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		used = append(used, s)
	}

	if includeSubs {
		// 使用者食材能替代食譜中的哪些食材（含反向關係）
		for _, u := range owned.items {
			if direct.has(u) {
				continue
			}
			for _, s := range m.graph.PossibleSubstitutes(u) {
				if required.has(s) {
					subMatches.add(u)
					record(s, u)
				}
			}
		}

		// 食譜缺少的食材有哪些直接替代在使用者手上
		for _, r := range required.items {
			if owned.has(r) {
				continue
			}
			for _, s := range m.graph.Substitutions(r) {
				if owned.has(s) && !subMatches.has(s) {
					subMatches.add(s)
					record(r, s)
				}
			}
		}
	}

	all := direct.clone()
	for _, s := range subMatches.items {
		all.add(s)
	}

	effective := required.clone()
	fair := 0
	for _, s := range used {
		effective.add(s.Original)
		if s.Quality == substitution.Fair {
			fair++
		}
	}

	union := owned.clone()
	for _, r := range effective.items {
		union.add(r)
	}
	inter := 0
	for _, a := range all.items {
		if union.has(a) {
			inter++
		}
	}

	var jaccard, coverage float64
	if union.len() > 0 {
		jaccard = float64(inter) / float64(union.len())
	}
	if effective.len() > 0 {
		coverage = float64(all.len()) / float64(effective.len())
	}
	score := math.Max(0, jaccard*jaccardWeight+coverage*coverageWeight-float64(fair)*fairPenalty)

	missing := []string{}
	for _, r := range effective.items {
		if !all.has(r) {
			missing = append(missing, r)
		}
	}

	if used == nil {
		used = []Substitution{}
	}
	return Result{
		Recipe:               recipe,
		MatchScore:           score,
		MatchPercentage:      percentage(coverage),
		MatchedIngredients:   all.list(),
		MissingIngredients:   missing,
		SubstitutionsUsed:    used,
		DirectMatches:        direct.list(),
		SubstitutionMatches:  subMatches.list(),
		HasPoorSubstitutions: fair > 0,
	}
}

// percentage 四捨五入並限制在 0-100
func percentage(ratio float64) int {
	p := math.Floor(ratio*100 + 0.5)
	return int(math.Max(0, math.Min(100, p)))
}

func keep(r Result, opts Options) bool {
	if r.MatchScore < opts.Threshold {
		return false
	}
	for _, d := range opts.DietaryRestrictions {
		if !r.HasDiet(d) {
			return false
		}
	}
	if opts.MaxCookingTime > 0 && r.CookingTime > opts.MaxCookingTime {
		return false
	}
	if len(opts.DifficultyLevels) > 0 {
		ok := false
		for _, level := range opts.DifficultyLevels {
			if strings.EqualFold(strings.TrimSpace(level), r.Difficulty) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// sortResults 穩定排序，同分時保留目錄原順序
func sortResults(results []Result, key SortKey) {
	var less func(a, b Result) bool
	switch key {
	case SortByCookingTime:
		less = func(a, b Result) bool { return a.CookingTime < b.CookingTime }
	case SortByMatchPercentage:
		less = func(a, b Result) bool { return a.MatchPercentage > b.MatchPercentage }
	case SortByCalories:
		less = func(a, b Result) bool { return a.Nutrition.Calories < b.Nutrition.Calories }
	case SortByIngredientCount:
		less = func(a, b Result) bool { return len(a.MissingIngredients) < len(b.MissingIngredients) }
	default:
		less = func(a, b Result) bool { return a.MatchScore > b.MatchScore }
	}
	sort.SliceStable(results, func(i, j int) bool { return less(results[i], results[j]) })
}
