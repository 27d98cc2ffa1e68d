package recognition

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	mockConfidence  = 85
	maxMockDetected = 8
)

// mockCategories 模擬辨識的分類與食材
var mockCategories = []struct {
	name  string
	items []string
}{
	{"vegetables", []string{"tomato", "onion", "garlic", "carrot", "bell pepper", "broccoli", "spinach", "potato", "cucumber"}},
	{"fruits", []string{"apple", "banana", "orange", "lemon", "avocado", "strawberry"}},
	{"proteins", []string{"chicken", "beef", "fish", "eggs", "tofu", "paneer", "lentils"}},
	{"grains", []string{"rice", "pasta", "bread", "quinoa", "oats"}},
	{"dairy", []string{"milk", "cheese", "yogurt", "butter"}},
	{"herbs", []string{"basil", "cilantro", "parsley", "mint", "oregano"}},
}

var pantryStaples = []string{"salt", "pepper", "oil", "water"}

// MockRecognizer 隨機產生合理的食材組合
type MockRecognizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockRecognizer seed 為 0 時以目前時間為種子
func NewMockRecognizer(seed int64) *MockRecognizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockRecognizer{rng: rand.New(rand.NewSource(seed))}
}

// Name 辨識器名稱
func (m *MockRecognizer) Name() string { return ProviderMock }

// Detect 忽略圖片內容，回傳模擬結果
func (m *MockRecognizer) Detect(ctx context.Context, _ string) (*Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Detection{
		Ingredients: m.Generate(),
		Confidence:  mockConfidence,
		Mock:        true,
	}, nil
}

// Generate 挑選 2 到 3 個分類，每類 1 到 2 項，再加一項常備調味
func (m *MockRecognizer) Generate() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	order := m.rng.Perm(len(mockCategories))
	picked := order[:2+m.rng.Intn(2)]

	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok || len(out) >= maxMockDetected {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, idx := range picked {
		items := mockCategories[idx].items
		count := 1 + m.rng.Intn(2)
		for _, i := range m.rng.Perm(len(items))[:count] {
			add(items[i])
		}
	}
	add(pantryStaples[m.rng.Intn(len(pantryStaples))])

	return out
}
