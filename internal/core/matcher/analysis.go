package matcher

import (
	"sort"

	"recipe-matcher/internal/core/catalog"
)

const (
	maxSuggestedPurchases = 5
	maxBestMatches        = 3
	bestMatchPercentage   = 80
)

// Analysis 依現有食材推估的採購建議
type Analysis struct {
	SuggestedPurchases    []string `json:"suggested_purchases"`
	BestMatches           []Result `json:"best_matches"`
	TotalPossibleRecipes  int      `json:"total_possible_recipes"`
	HighConfidenceMatches int      `json:"high_confidence_matches"`
}

// Analyze 以寬鬆門檻比對後統計最常缺少的食材與高信心食譜
func (m *Matcher) Analyze(user []string, recipes []catalog.Recipe) Analysis {
	opts := DefaultOptions()
	opts.Threshold = analysisThreshold
	matches := m.Match(user, recipes, opts)

	type tally struct {
		name  string
		count int
	}
	var counts []tally
	pos := make(map[string]int)
	for _, r := range matches {
		for _, ing := range r.MissingIngredients {
			i, ok := pos[ing]
			if !ok {
				pos[ing] = len(counts)
				counts = append(counts, tally{name: ing})
				i = len(counts) - 1
			}
			counts[i].count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })

	purchases := make([]string, 0, maxSuggestedPurchases)
	for _, c := range counts {
		if len(purchases) == maxSuggestedPurchases {
			break
		}
		purchases = append(purchases, c.name)
	}

	best := make([]Result, 0, maxBestMatches)
	for _, r := range matches {
		if len(best) == maxBestMatches {
			break
		}
		if r.MatchPercentage >= bestMatchPercentage {
			best = append(best, r)
		}
	}

	return Analysis{
		SuggestedPurchases:    purchases,
		BestMatches:           best,
		TotalPossibleRecipes:  len(matches),
		HighConfidenceMatches: len(best),
	}
}
