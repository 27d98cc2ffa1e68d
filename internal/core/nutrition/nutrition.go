// Package nutrition 營養資訊的縮放、格式化與分析
package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Facts 每份食譜的營養資訊，fiber/sugar/sodium 為選填
type Facts struct {
	Calories float64  `json:"calories" yaml:"calories"`
	Protein  float64  `json:"protein" yaml:"protein"`
	Carbs    float64  `json:"carbs" yaml:"carbs"`
	Fat      float64  `json:"fat" yaml:"fat"`
	Fiber    *float64 `json:"fiber,omitempty" yaml:"fiber,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty" yaml:"sugar,omitempty"`
	Sodium   *float64 `json:"sodium,omitempty" yaml:"sodium,omitempty"`
}

// Float 選填欄位的輔助建構
func Float(v float64) *float64 {
	return &v
}

type field struct {
	name  string
	value float64
}

// fields 依固定順序列出已設定的欄位
func (f Facts) fields() []field {
	out := []field{
		{"calories", f.Calories},
		{"protein", f.Protein},
		{"carbs", f.Carbs},
		{"fat", f.Fat},
	}
	if f.Fiber != nil {
		out = append(out, field{"fiber", *f.Fiber})
	}
	if f.Sugar != nil {
		out = append(out, field{"sugar", *f.Sugar})
	}
	if f.Sodium != nil {
		out = append(out, field{"sodium", *f.Sodium})
	}
	return out
}

func (f Facts) lookup(name string) (float64, bool) {
	for _, fd := range f.fields() {
		if fd.name == name {
			return fd.value, true
		}
	}
	return 0, false
}

type thresholds struct {
	low, high float64
}

var levelThresholds = map[string]thresholds{
	"calories": {400, 800},
	"protein":  {10, 30},
	"carbs":    {20, 60},
	"fat":      {5, 25},
	"sugar":    {5, 15},
	"sodium":   {140, 500},
}

// dailyValues 以每日 2000 大卡為基準的建議攝取量
var dailyValues = map[string]float64{
	"calories": 2000,
	"protein":  50,
	"carbs":    300,
	"fat":      65,
	"sugar":    50,
	"sodium":   2300,
	"fiber":    28,
}

var (
	lowerIsBetter  = map[string]bool{"calories": true, "fat": true, "sugar": true, "sodium": true}
	higherIsBetter = map[string]bool{"protein": true, "fiber": true}
)

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

func scaleOpt(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(roundTo(*v*factor, 1))
}

// Scale 依份數縮放，servings 非正數時原樣回傳
func Scale(f Facts, servings, target float64) Facts {
	if servings <= 0 {
		return f
	}
	factor := target / servings
	return Facts{
		Calories: roundTo(f.Calories*factor, 1),
		Protein:  roundTo(f.Protein*factor, 1),
		Carbs:    roundTo(f.Carbs*factor, 1),
		Fat:      roundTo(f.Fat*factor, 1),
		Fiber:    scaleOpt(f.Fiber, factor),
		Sugar:    scaleOpt(f.Sugar, factor),
		Sodium:   scaleOpt(f.Sodium, factor),
	}
}

// DailyValues 每日建議攝取百分比，上限 100
func DailyValues(f Facts) map[string]float64 {
	out := make(map[string]float64)
	for _, fd := range f.fields() {
		ref, ok := dailyValues[fd.name]
		if !ok {
			continue
		}
		out[fd.name] = math.Min(roundTo(fd.value/ref*100, 1), 100)
	}
	return out
}

var printer = message.NewPrinter(language.English)

// Format 加上單位的顯示字串
func Format(f Facts) map[string]string {
	out := make(map[string]string)
	for _, fd := range f.fields() {
		switch fd.name {
		case "calories":
			out[fd.name] = printer.Sprintf("%v cal", number.Decimal(fd.value))
		case "sodium":
			out[fd.name] = strconv.FormatFloat(fd.value, 'f', -1, 64) + "mg"
		default:
			out[fd.name] = strconv.FormatFloat(fd.value, 'f', -1, 64) + "g"
		}
	}
	return out
}

// Level 依門檻判斷 low/medium/high，未定義門檻者為 unknown
func Level(nutrient string, value float64) string {
	t, ok := levelThresholds[nutrient]
	if !ok {
		return "unknown"
	}
	switch {
	case value < t.low:
		return "low"
	case value > t.high:
		return "high"
	default:
		return "medium"
	}
}

// Levels 每個已設定欄位的等級
func Levels(f Facts) map[string]string {
	out := make(map[string]string)
	for _, fd := range f.fields() {
		out[fd.name] = Level(fd.name, fd.value)
	}
	return out
}

// Analysis 飲食特性與綜合評分
type Analysis struct {
	IsHighProtein bool   `json:"is_high_protein"`
	IsLowCarb     bool   `json:"is_low_carb"`
	IsLowFat      bool   `json:"is_low_fat"`
	IsLowCalorie  bool   `json:"is_low_calorie"`
	IsHighFiber   bool   `json:"is_high_fiber"`
	IsLowSodium   bool   `json:"is_low_sodium"`
	IsLowSugar    bool   `json:"is_low_sugar"`
	Score         int    `json:"nutrition_score"`
	Grade         string `json:"nutrition_grade"`
}

// Analyze 判斷飲食特性並計算 0-100 評分；缺少的選填欄位不成立任何旗標
func Analyze(f Facts) Analysis {
	a := Analysis{
		IsHighProtein: f.Protein > 20,
		IsLowCarb:     f.Carbs < 30,
		IsLowFat:      f.Fat < 10,
		IsLowCalorie:  f.Calories < 400,
		IsHighFiber:   f.Fiber != nil && *f.Fiber > 8,
		IsLowSodium:   f.Sodium != nil && *f.Sodium < 140,
		IsLowSugar:    f.Sugar != nil && *f.Sugar < 5,
	}

	score := 50
	for _, ok := range []bool{a.IsHighProtein, a.IsHighFiber, a.IsLowSugar, a.IsLowSodium} {
		if ok {
			score += 10
		}
	}
	if f.Calories > 800 {
		score -= 5
	}
	if f.Calories < 200 {
		score += 5
	}

	a.Score = max(0, min(100, score))
	a.Grade = Grade(a.Score)
	return a
}

// Grade 分數轉換為等第
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// Macros 三大營養素的熱量占比（百分比）
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// MacroRatios 計算熱量占比，無熱量資料時回傳 false
func MacroRatios(f Facts) (Macros, bool) {
	if f.Calories == 0 {
		return Macros{}, false
	}
	protein := f.Protein * 4
	carbs := f.Carbs * 4
	fat := f.Fat * 9
	total := protein + carbs + fat
	if total == 0 {
		return Macros{}, false
	}
	return Macros{
		Protein: int(roundTo(protein/total*100, 0)),
		Carbs:   int(roundTo(carbs/total*100, 0)),
		Fat:     int(roundTo(fat/total*100, 0)),
	}, true
}

// Comparison 單一欄位的差異，IsBetter 為 nil 表示無健康方向
type Comparison struct {
	Difference float64 `json:"difference"`
	Percentage float64 `json:"percentage"`
	IsBetter   *bool   `json:"is_better"`
}

// Compare 比較兩份營養資訊，缺少的欄位以 0 計
func Compare(from, to Facts) map[string]Comparison {
	names := []string{"calories", "protein", "carbs", "fat", "fiber", "sugar", "sodium"}
	out := make(map[string]Comparison)
	for _, name := range names {
		a, okA := from.lookup(name)
		b, okB := to.lookup(name)
		if !okA && !okB {
			continue
		}

		diff := b - a
		pct := 0.0
		if a != 0 {
			pct = diff / a * 100
		}

		var better *bool
		switch {
		case lowerIsBetter[name]:
			v := b < a
			better = &v
		case higherIsBetter[name]:
			v := b > a
			better = &v
		}

		out[name] = Comparison{
			Difference: roundTo(diff, 1),
			Percentage: roundTo(pct, 1),
			IsBetter:   better,
		}
	}
	return out
}

// Summary 單份營養摘要
type Summary struct {
	Values      Facts              `json:"values"`
	Formatted   map[string]string  `json:"formatted"`
	DailyValues map[string]float64 `json:"daily_values"`
	Analysis    Analysis           `json:"analysis"`
	Macros      *Macros            `json:"macros,omitempty"`
	Levels      map[string]string  `json:"levels"`
}

// Summarize 將整份食譜的營養換算為單份並產生摘要
func Summarize(f Facts, servings float64) Summary {
	scaled := Scale(f, servings, 1)
	s := Summary{
		Values:      scaled,
		Formatted:   Format(scaled),
		DailyValues: DailyValues(scaled),
		Analysis:    Analyze(scaled),
		Levels:      Levels(scaled),
	}
	if m, ok := MacroRatios(scaled); ok {
		s.Macros = &m
	}
	return s
}

// Validate 檢查數值非負且為有限值
func Validate(f Facts) error {
	var errs []error
	for _, fd := range f.fields() {
		switch {
		case math.IsNaN(fd.value) || math.IsInf(fd.value, 0):
			errs = append(errs, fmt.Errorf("invalid value for %s: not a finite number", fd.name))
		case fd.value < 0:
			errs = append(errs, fmt.Errorf("invalid value for %s: cannot be negative", fd.name))
		}
	}
	return errors.Join(errs...)
}

var conversions = map[string]func(float64) float64{
	"g->mg":   func(v float64) float64 { return v * 1000 },
	"mg->g":   func(v float64) float64 { return v / 1000 },
	"g->kg":   func(v float64) float64 { return v / 1000 },
	"kg->g":   func(v float64) float64 { return v * 1000 },
	"cal->kj": func(v float64) float64 { return v * 4.184 },
	"kj->cal": func(v float64) float64 { return v / 4.184 },
}

// Convert 單位換算（四捨五入至小數兩位），不支援的組合原樣回傳
func Convert(value float64, from, to string) float64 {
	conv, ok := conversions[from+"->"+to]
	if !ok {
		return value
	}
	return roundTo(conv(value), 2)
}
