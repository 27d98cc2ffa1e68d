package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog 已驗證的食譜集合，建立後不再變動
type Catalog struct {
	recipes []Recipe
	byID    map[int]int
}

// New 驗證並建立目錄，任一筆不合法即整批拒絕
func New(recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]Recipe, 0, len(recipes)),
		byID:    make(map[int]int, len(recipes)),
	}

	var errs []error
	for _, raw := range recipes {
		r := normalize(raw)
		if err := validate(r); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.byID[r.ID]; dup {
			errs = append(errs, fmt.Errorf("%w %d (%q): duplicate id", ErrInvalidRecipe, r.ID, r.Name))
			continue
		}
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

var builtin = sync.OnceValue(func() *Catalog {
	c, err := New(defaultRecipes())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
})

// Default 內建食譜目錄
func Default() *Catalog {
	return builtin()
}

// file 目錄檔案格式
type file struct {
	Recipes []Recipe `yaml:"recipes"`
}

// LoadFile 從 YAML 或 JSON 檔案載入目錄
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML/JSON 內容，頂層需有 recipes 欄位
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Recipes) == 0 {
		return nil, fmt.Errorf("parse catalog: no recipes defined")
	}
	return New(f.Recipes)
}

// Len 食譜數量
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// All 依目錄順序回傳所有食譜
func (c *Catalog) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// ByID 依 ID 取得食譜
func (c *Catalog) ByID(id int) (Recipe, error) {
	i, ok := c.byID[id]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c.recipes[i], nil
}

func (c *Catalog) where(keep func(Recipe) bool) []Recipe {
	out := []Recipe{}
	for _, r := range c.recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(list []string, term string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// matchesQuery 名稱、食材、標籤或菜系包含關鍵字（term 需已小寫）
func matchesQuery(r Recipe, term string) bool {
	return strings.Contains(strings.ToLower(r.Name), term) ||
		containsFold(r.Ingredients, term) ||
		containsFold(r.Tags, term) ||
		strings.Contains(strings.ToLower(r.Cuisine), term)
}

// Filter 列表查詢條件，零值欄位不參與篩選
type Filter struct {
	Diet       string
	Cuisine    string
	Difficulty string
	MaxTime    int
	Query      string
}

// Find 依條件篩選，所有條件皆需符合；Query 比對名稱、食材、標籤與菜系
func (c *Catalog) Find(f Filter) []Recipe {
	term := strings.ToLower(strings.TrimSpace(f.Query))
	return c.where(func(r Recipe) bool {
		if f.Diet != "" && !r.HasDiet(f.Diet) {
			return false
		}
		if f.Cuisine != "" && !strings.EqualFold(r.Cuisine, strings.TrimSpace(f.Cuisine)) {
			return false
		}
		if f.Difficulty != "" && !strings.EqualFold(r.Difficulty, strings.TrimSpace(f.Difficulty)) {
			return false
		}
		if f.MaxTime > 0 && r.TotalTime > f.MaxTime {
			return false
		}
		return term == "" || matchesQuery(r, term)
	})
}

// AllIngredients 所有食譜用到的食材，去重並排序
func (c *Catalog) AllIngredients() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range c.recipes {
		for _, ing := range r.Ingredients {
			if _, dup := seen[ing]; dup {
				continue
			}
			seen[ing] = struct{}{}
			out = append(out, ing)
		}
	}
	sort.Strings(out)
	return out
}

// Partial 只缺少少量食材的食譜
type Partial struct {
	Recipe
	MissingCount int      `json:"missing_count"`
	Missing      []string `json:"missing_ingredients"`
}

// WithMinimalMissing 缺少食材數不超過 maxMissing 的食譜，依缺少數遞增排序
func (c *Catalog) WithMinimalMissing(available []string, maxMissing int) []Partial {
	have := make(map[string]struct{}, len(available))
	for _, a := range available {
		have[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}

	out := []Partial{}
	for _, r := range c.recipes {
		seen := make(map[string]struct{})
		missing := []string{}
		for _, ing := range r.Ingredients {
			if _, dup := seen[ing]; dup {
				continue
			}
			seen[ing] = struct{}{}
			if _, ok := have[ing]; !ok {
				missing = append(missing, ing)
			}
		}
		if len(missing) <= maxMissing {
			out = append(out, Partial{Recipe: r, MissingCount: len(missing), Missing: missing})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MissingCount < out[j].MissingCount })
	return out
}

// Random 隨機取一筆食譜，目錄為空時回傳 ErrNotFound
func (c *Catalog) Random(rng *rand.Rand) (Recipe, error) {
	if len(c.recipes) == 0 {
		return Recipe{}, ErrNotFound
	}
	return c.recipes[rng.Intn(len(c.recipes))], nil
}
