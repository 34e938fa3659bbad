package search

import "unicode"

// MaxAmbiguity is the largest number of edits the matcher tolerates.
const MaxAmbiguity = 3

// maxPatternLen is the number of non-wildcard characters a pattern can hold;
// one bit of the state word is reserved for the accept position.
const maxPatternLen = 63

const initState uint64 = 1 << 63

// Matcher is an approximate pattern matcher in the style of Wu-Manber's
// bitap algorithm. A space in the pattern matches any run of characters
// (including none), letters match case-insensitively, and up to ambiguity
// insertions, deletions or substitutions are tolerated.
//
// The pattern is anchored at both ends of the text, so a query wrapped in
// spaces behaves like a fuzzy "contains".
type Matcher struct {
	shift     map[rune]uint64
	epsilon   uint64
	accept    uint64
	ambiguity int
}

// NewMatcher pads query with a space on each side and compiles it. An empty
// query yields nil; callers use the identity list instead.
func NewMatcher(query string, ambiguity int) *Matcher {
	if query == "" {
		return nil
	}
	return compile(" "+query+" ", ambiguity)
}

func compile(pattern string, ambiguity int) *Matcher {
	if ambiguity < 0 {
		ambiguity = 0
	}
	if ambiguity > MaxAmbiguity {
		ambiguity = MaxAmbiguity
	}

	m := &Matcher{shift: make(map[rune]uint64), ambiguity: ambiguity}
	mask := initState
	n := 0
	for _, r := range pattern {
		if r == ' ' {
			m.epsilon |= mask
			continue
		}
		if n == maxPatternLen {
			// Overlong patterns keep their prefix and accept any tail.
			m.epsilon |= mask
			break
		}
		m.shift[unicode.ToLower(r)] |= mask
		m.shift[unicode.ToUpper(r)] |= mask
		m.shift[unicode.ToTitle(r)] |= mask
		mask >>= 1
		n++
	}
	m.accept = mask
	return m
}

// Match reports whether text plausibly matches the pattern.
func (m *Matcher) Match(text string) bool {
	if m == nil {
		return false
	}
	var state [MaxAmbiguity + 1]uint64
	state[0] = initState
	for k := 1; k <= MaxAmbiguity; k++ {
		state[k] = state[k-1] | (state[k-1] >> 1)
	}

	for _, r := range text {
		mask := m.shift[r]
		for k := MaxAmbiguity; k > 0; k-- {
			state[k] = (state[k] & m.epsilon) |
				((state[k] & mask) >> 1) |
				(state[k-1] >> 1) |
				state[k-1]
		}
		state[0] = (state[0] & m.epsilon) | ((state[0] & mask) >> 1)
		for k := 1; k <= MaxAmbiguity; k++ {
			state[k] |= state[k-1] >> 1
		}
	}
	return state[m.ambiguity]&m.accept != 0
}
