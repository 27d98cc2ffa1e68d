package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carbonara() Facts {
	return Facts{
		Calories: 450, Protein: 20, Carbs: 55, Fat: 15,
		Fiber: Float(3), Sugar: Float(2), Sodium: Float(800),
	}
}

func TestScale(t *testing.T) {
	got := Scale(carbonara(), 4, 1)
	assert.Equal(t, 112.5, got.Calories)
	assert.Equal(t, 5.0, got.Protein)
	assert.Equal(t, 13.8, got.Carbs)
	assert.Equal(t, 3.8, got.Fat)
	require.NotNil(t, got.Fiber)
	assert.Equal(t, 0.8, *got.Fiber)
	assert.Equal(t, 200.0, *got.Sodium)

	same := Scale(carbonara(), 0, 1)
	assert.Equal(t, carbonara(), same)
}

func TestScaleKeepsMissingFields(t *testing.T) {
	got := Scale(Facts{Calories: 100}, 2, 4)
	assert.Equal(t, 200.0, got.Calories)
	assert.Nil(t, got.Fiber)
	assert.Nil(t, got.Sodium)
}

func TestDailyValues(t *testing.T) {
	dv := DailyValues(carbonara())
	assert.Equal(t, 22.5, dv["calories"])
	assert.Equal(t, 40.0, dv["protein"])
	assert.Equal(t, 34.8, dv["sodium"])

	capped := DailyValues(Facts{Calories: 5000})
	assert.Equal(t, 100.0, capped["calories"])
	_, hasFiber := capped["fiber"]
	assert.False(t, hasFiber)
}

func TestFormat(t *testing.T) {
	got := Format(Facts{Calories: 1234, Protein: 12.5, Carbs: 30, Fat: 8, Sodium: Float(300)})
	assert.Equal(t, "1,234 cal", got["calories"])
	assert.Equal(t, "12.5g", got["protein"])
	assert.Equal(t, "30g", got["carbs"])
	assert.Equal(t, "300mg", got["sodium"])
	assert.NotContains(t, got, "fiber")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "low", Level("calories", 399))
	assert.Equal(t, "medium", Level("calories", 400))
	assert.Equal(t, "medium", Level("calories", 800))
	assert.Equal(t, "high", Level("calories", 801))
	assert.Equal(t, "unknown", Level("fiber", 10))
}

func TestAnalyze(t *testing.T) {
	soup := Facts{Calories: 180, Protein: 5, Carbs: 35, Fat: 2, Fiber: Float(6), Sugar: Float(8), Sodium: Float(700)}
	a := Analyze(soup)
	assert.True(t, a.IsLowFat)
	assert.True(t, a.IsLowCalorie)
	assert.False(t, a.IsHighFiber)
	assert.Equal(t, 55, a.Score)
	assert.Equal(t, "D", a.Grade)

	lean := Facts{Calories: 150, Protein: 25, Carbs: 10, Fat: 3, Fiber: Float(9), Sugar: Float(1), Sodium: Float(100)}
	a = Analyze(lean)
	assert.Equal(t, 95, a.Score)
	assert.Equal(t, "A+", a.Grade)

	heavy := Facts{Calories: 900, Protein: 5, Carbs: 90, Fat: 40}
	a = Analyze(heavy)
	assert.False(t, a.IsLowSodium)
	assert.Equal(t, 45, a.Score)
	assert.Equal(t, "F", a.Grade)
}

func TestGrade(t *testing.T) {
	tests := map[int]string{100: "A+", 90: "A+", 85: "A", 70: "B", 65: "C", 50: "D", 10: "F"}
	for score, want := range tests {
		assert.Equal(t, want, Grade(score), score)
	}
}

func TestMacroRatios(t *testing.T) {
	m, ok := MacroRatios(carbonara())
	require.True(t, ok)
	assert.Equal(t, Macros{Protein: 18, Carbs: 51, Fat: 31}, m)

	_, ok = MacroRatios(Facts{})
	assert.False(t, ok)

	_, ok = MacroRatios(Facts{Calories: 10})
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	before := Facts{Calories: 400, Protein: 20, Carbs: 50, Fat: 10}
	after := Facts{Calories: 300, Protein: 25, Carbs: 50, Fat: 12, Fiber: Float(4)}

	c := Compare(before, after)
	assert.Equal(t, -100.0, c["calories"].Difference)
	assert.Equal(t, -25.0, c["calories"].Percentage)
	require.NotNil(t, c["calories"].IsBetter)
	assert.True(t, *c["calories"].IsBetter)

	require.NotNil(t, c["fat"].IsBetter)
	assert.False(t, *c["fat"].IsBetter)

	assert.Nil(t, c["carbs"].IsBetter)

	assert.Equal(t, 4.0, c["fiber"].Difference)
	assert.Equal(t, 0.0, c["fiber"].Percentage)

	assert.NotContains(t, c, "sodium")
}

func TestSummarize(t *testing.T) {
	s := Summarize(carbonara(), 4)
	assert.Equal(t, 112.5, s.Values.Calories)
	assert.Equal(t, "112.5 cal", s.Formatted["calories"])
	assert.Equal(t, "low", s.Levels["calories"])
	require.NotNil(t, s.Macros)
	assert.Equal(t, "C", s.Analysis.Grade)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(carbonara()))

	err := Validate(Facts{Calories: -1, Protein: math.NaN(), Sodium: Float(-5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calories")
	assert.Contains(t, err.Error(), "protein")
	assert.Contains(t, err.Error(), "sodium")
}

func TestConvert(t *testing.T) {
	assert.Equal(t, 1500.0, Convert(1.5, "g", "mg"))
	assert.Equal(t, 0.25, Convert(250, "mg", "g"))
	assert.Equal(t, 418.4, Convert(100, "cal", "kj"))
	assert.Equal(t, 23.9, Convert(100, "kj", "cal"))
	assert.Equal(t, 42.0, Convert(42, "oz", "g"))
}
