package search

import "math"

// maxPatternRunes is the widest pattern a single bitmask pass handles. Longer
// patterns are searched in chunks of this size.
const maxPatternRunes = 32

type bitapOptions struct {
	threshold      float64
	location       int
	distance       int
	ignoreLocation bool
}

// score is the normalised distance of a candidate match: the error ratio plus,
// unless location is ignored, how far the match sits from the expected location.
func (o bitapOptions) score(errors, patternLen, current, expected int) float64 {
	accuracy := float64(errors) / float64(patternLen)
	if o.ignoreLocation {
		return accuracy
	}
	proximity := expected - current
	if proximity < 0 {
		proximity = -proximity
	}
	if o.distance <= 0 {
		if proximity != 0 {
			return 1
		}
		return accuracy
	}
	return accuracy + float64(proximity)/float64(o.distance)
}

type bitapChunk struct {
	pattern  []rune
	alphabet map[rune]uint64
	start    int
}

// bitapPattern is a compiled, normalised query.
type bitapPattern struct {
	text   string
	chunks []bitapChunk
	opts   bitapOptions
}

func newBitapPattern(pattern string, opts bitapOptions) *bitapPattern {
	p := &bitapPattern{text: pattern, opts: opts}
	runes := []rune(pattern)
	if len(runes) == 0 {
		return p
	}
	add := func(rs []rune, start int) {
		p.chunks = append(p.chunks, bitapChunk{pattern: rs, alphabet: alphabetOf(rs), start: start})
	}
	if len(runes) <= maxPatternRunes {
		add(runes, 0)
		return p
	}
	full := len(runes) / maxPatternRunes * maxPatternRunes
	for i := 0; i < full; i += maxPatternRunes {
		add(runes[i:i+maxPatternRunes], i)
	}
	if full < len(runes) {
		start := len(runes) - maxPatternRunes
		add(runes[start:], start)
	}
	return p
}

func alphabetOf(p []rune) map[rune]uint64 {
	m := make(map[rune]uint64, len(p))
	n := len(p)
	for i, r := range p {
		m[r] |= 1 << uint(n-i-1)
	}
	return m
}

// match scores normalised text against the pattern. ok is false when no chunk
// matches within the threshold.
func (p *bitapPattern) match(text string) (float64, bool) {
	if len(p.chunks) == 0 {
		return 1, false
	}
	if text == p.text {
		return 0, true
	}
	rs := []rune(text)
	var total float64
	matched := false
	for _, c := range p.chunks {
		o := p.opts
		o.location += c.start
		score, ok := c.search(rs, o)
		if ok {
			matched = true
		}
		total += score
	}
	if !matched {
		return 1, false
	}
	return total / float64(len(p.chunks)), true
}

func (c bitapChunk) search(text []rune, o bitapOptions) (float64, bool) {
	patternLen := len(c.pattern)
	textLen := len(text)
	expected := max(0, min(o.location, textLen))
	threshold := o.threshold

	// Exact occurrences tighten the threshold before the fuzzy passes.
	for from := expected; from <= textLen; {
		i := indexRunes(text[from:], c.pattern)
		if i < 0 {
			break
		}
		loc := from + i
		threshold = math.Min(threshold, o.score(0, patternLen, loc, expected))
		from = loc + patternLen
	}

	best := -1
	bestScore := 1.0
	mask := uint64(1) << uint(patternLen-1)
	binMax := patternLen + textLen
	var last []uint64

	for i := 0; i < patternLen; i++ {
		// Widest window around the expected location that can still beat the
		// threshold with i errors.
		binMin, binMid := 0, binMax
		for binMin < binMid {
			if o.score(i, patternLen, expected+binMid, expected) <= threshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid

		start := max(1, expected-binMid+1)
		finish := min(expected+binMid, textLen) + patternLen

		cur := make([]uint64, finish+2)
		cur[finish+1] = (uint64(1) << uint(i)) - 1
		for j := finish; j >= start; j-- {
			loc := j - 1
			var charMatch uint64
			if loc < textLen {
				charMatch = c.alphabet[text[loc]]
			}
			cur[j] = ((cur[j+1] << 1) | 1) & charMatch
			if i > 0 {
				cur[j] |= ((at(last, j+1) | at(last, j)) << 1) | 1 | at(last, j+1)
			}
			if cur[j]&mask == 0 {
				continue
			}
			s := o.score(i, patternLen, loc, expected)
			if s > threshold {
				continue
			}
			threshold = s
			bestScore = s
			best = loc
			if best <= expected {
				break
			}
			start = max(1, 2*expected-best)
		}

		if o.score(i+1, patternLen, expected, expected) > threshold {
			break
		}
		last = cur
	}

	if best < 0 {
		return 1, false
	}
	return math.Max(0.001, bestScore), true
}

func at(bits []uint64, i int) uint64 {
	if i < 0 || i >= len(bits) {
		return 0
	}
	return bits[i]
}

func indexRunes(text, pattern []rune) int {
	n := len(pattern)
	for i := 0; i+n <= len(text); i++ {
		match := true
		for k := 0; k < n; k++ {
			if text[i+k] != pattern[k] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
