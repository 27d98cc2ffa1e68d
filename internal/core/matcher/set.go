package matcher

// orderedSet 保留插入順序的字串集合
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		items: make([]string, 0, capacity),
		index: make(map[string]struct{}, capacity),
	}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) has(v string) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet) len() int {
	return len(s.items)
}

func (s *orderedSet) clone() *orderedSet {
	c := newOrderedSet(len(s.items))
	for _, v := range s.items {
		c.add(v)
	}
	return c
}

// list 回傳非 nil 的副本
func (s *orderedSet) list() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
