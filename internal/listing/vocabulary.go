package listing

import "strings"

// Vocabulary is the ordered set of filter values offered as chips,
// in first-seen order.
type Vocabulary struct {
	values []string
	index  map[string]struct{}
}

func NewVocabulary(values ...string) Vocabulary {
	v := Vocabulary{index: make(map[string]struct{}, len(values))}
	for _, value := range values {
		v.add(value)
	}
	return v
}

// VocabularyOf collects terms(item) over items.
func VocabularyOf[T any](items []T, terms func(T) []string) Vocabulary {
	v := Vocabulary{index: make(map[string]struct{})}
	if terms == nil {
		return v
	}
	for _, item := range items {
		for _, term := range terms(item) {
			v.add(term)
		}
	}
	return v
}

func (v *Vocabulary) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, ok := v.index[value]; ok {
		return
	}
	v.index[value] = struct{}{}
	v.values = append(v.values, value)
}

func (v Vocabulary) Values() []string {
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

func (v Vocabulary) Contains(value string) bool {
	_, ok := v.index[value]
	return ok
}

func (v Vocabulary) Len() int {
	return len(v.values)
}

// Head returns the first n values.
func (v Vocabulary) Head(n int) []string {
	if n < 0 || n > len(v.values) {
		n = len(v.values)
	}
	return append([]string(nil), v.values[:n]...)
}
