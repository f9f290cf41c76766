package grammar

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type memoKey struct {
	name   string
	offset int
}

// Matcher matches text against productions of a grammar. Every possible
// end offset is tracked, so repetitions may give back input to whatever
// follows them. Whitespace is never skipped, so only the lexical
// productions match source text directly.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey][]int
	visiting map[memoKey]bool
}

func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{grammar: g}
}

// Match reports whether the whole of text is derived by the production.
func (m *Matcher) Match(production, text string) (bool, error) {
	if _, ok := m.grammar[production]; !ok {
		return false, fmt.Errorf("unknown production: %s", production)
	}
	for _, end := range m.ends(production, text) {
		if end == len(text) {
			return true, nil
		}
	}
	return false, nil
}

// Longest returns the length of the longest prefix of text derived by
// the production, or -1 when no prefix is.
func (m *Matcher) Longest(production, text string) int {
	ends := m.ends(production, text)
	if len(ends) == 0 {
		return -1
	}
	return ends[len(ends)-1]
}

func (m *Matcher) ends(production, text string) []int {
	m.input = text
	m.memo = make(map[memoKey][]int)
	m.visiting = make(map[memoKey]bool)
	return m.matchName(production, 0)
}

// Match matches text against a production of the embedded grammar.
func Match(production, text string) (bool, error) {
	g, err := Load()
	if err != nil {
		return false, err
	}
	return NewMatcher(g).Match(production, text)
}

func (m *Matcher) match(expr ebnf.Expression, offset int) []int {
	switch e := expr.(type) {
	case nil:
		return []int{offset}

	case *ebnf.Token:
		if len(m.input)-offset >= len(e.String) && m.input[offset:offset+len(e.String)] == e.String {
			return []int{offset + len(e.String)}
		}
		return nil

	case *ebnf.Range:
		return m.matchRange(e, offset)

	case ebnf.Sequence:
		ends := []int{offset}
		for _, item := range e {
			var next []int
			for _, end := range ends {
				next = union(next, m.match(item, end))
			}
			if len(next) == 0 {
				return nil
			}
			ends = next
		}
		return ends

	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = union(ends, m.match(alt, offset))
		}
		return ends

	case *ebnf.Repetition:
		ends := []int{offset}
		frontier := []int{offset}
		for len(frontier) > 0 {
			var next []int
			for _, end := range frontier {
				for _, n := range m.match(e.Body, end) {
					if !contains(ends, n) {
						next = union(next, []int{n})
					}
				}
			}
			ends = union(ends, next)
			frontier = next
		}
		return ends

	case *ebnf.Option:
		return union([]int{offset}, m.match(e.Body, offset))

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)

	default:
		return nil
	}
}

// matchName breaks left recursion by failing a production that is already
// being matched at the same offset.
func (m *Matcher) matchName(name string, offset int) []int {
	key := memoKey{name: name, offset: offset}
	if ends, ok := m.memo[key]; ok {
		return ends
	}
	if m.visiting[key] {
		return nil
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = nil
		return nil
	}

	m.visiting[key] = true
	ends := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = ends
	return ends
}

func (m *Matcher) matchRange(e *ebnf.Range, offset int) []int {
	if offset >= len(m.input) {
		return nil
	}
	begin, _ := utf8.DecodeRuneInString(e.Begin.String)
	end, _ := utf8.DecodeRuneInString(e.End.String)
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if r >= begin && r <= end {
		return []int{offset + size}
	}
	return nil
}

// union merges two sorted offset sets.
func union(a, b []int) []int {
	for _, n := range b {
		if !contains(a, n) {
			a = append(a, n)
		}
	}
	sort.Ints(a)
	return a
}

func contains(s []int, n int) bool {
	for _, v := range s {
		if v == n {
			return true
		}
	}
	return false
}
