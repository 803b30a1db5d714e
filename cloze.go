package anki

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"
)

// ClozeDeletionReplacement is shown on the question side in place of a
// cloze deletion that has no hint.
const ClozeDeletionReplacement = "[...]"

// clozeFormat matches {{c<ord>::content::hint}}. Group 1 is the "c" marker,
// group 2 the content and group 4 the optional hint.
const clozeFormat = `\{\{(c)%s::(.*?)(::(.*?))?\}\}`

var (
	otherClozesPattern = regexp.MustCompile(`(?si)` + fmt.Sprintf(clozeFormat, `\d+`))
	clozeOrdPattern    = regexp.MustCompile(`(?s)\{\{c(\d+)::.+?\}\}`)

	clozePatterns = newPatternMemo(func(ord string) string {
		return `(?si)` + fmt.Sprintf(clozeFormat, regexp.QuoteMeta(ord))
	})
	// A MathJax opening (group 1), a closing (group 2) or a cloze (group 3).
	mathJaxPatterns = newPatternMemo(func(ord string) string {
		return `(?si)(\\[(\[])|(\\[)\]])|(` + fmt.Sprintf(clozeFormat, regexp.QuoteMeta(ord)) + `)`
	})
)

// maxMemoOrd bounds the ordinals whose patterns are kept. Others are
// compiled for each use.
const maxMemoOrd = 500

// patternMemo keeps the compiled per-ordinal patterns of the canonical
// ordinals 1..maxMemoOrd.
type patternMemo struct {
	source func(ord string) string
	mu     sync.RWMutex
	byOrd  map[string]*regexp.Regexp
}

func newPatternMemo(source func(ord string) string) *patternMemo {
	return &patternMemo{source: source, byOrd: make(map[string]*regexp.Regexp)}
}

func (m *patternMemo) get(ord string) *regexp.Regexp {
	if !memoizable(ord) {
		return regexp.MustCompile(m.source(ord))
	}
	m.mu.RLock()
	re, ok := m.byOrd[ord]
	m.mu.RUnlock()
	if ok {
		return re
	}
	re = regexp.MustCompile(m.source(ord))
	m.mu.Lock()
	m.byOrd[ord] = re
	m.mu.Unlock()
	return re
}

func (m *patternMemo) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byOrd)
}

// memoizable reports whether ord is written as a number in 1..maxMemoOrd
// without leading zeros, so at most maxMemoOrd keys exist.
func memoizable(ord string) bool {
	n, err := strconv.Atoi(ord)
	return err == nil && n >= 1 && n <= maxMemoOrd && strconv.Itoa(n) == ord
}

func clozePattern(ord string) *regexp.Regexp {
	return clozePatterns.get(ord)
}

func mathJaxPattern(ord string) *regexp.Regexp {
	return mathJaxPatterns.get(ord)
}

// ClozeText extracts cloze deletion ord from text. On the question side the
// deletion becomes its hint in brackets or ClozeDeletionReplacement, on the
// answer side its content. Deletions of other ordinals are shown as plain
// content. Text without a deletion of ord yields "".
func ClozeText(text, ord string, question bool) string {
	if text == "" || ord == "" {
		return ""
	}
	re := clozePattern(ord)
	if !re.MatchString(text) {
		return ""
	}
	text = maskMathJaxClozes(text, ord)
	text = replaceAllSubmatchFunc(re, text, func(g []string) string {
		var buf string
		switch {
		case !question:
			buf = g[2]
		case g[4] != "":
			buf = "[" + g[4] + "]"
		default:
			buf = ClozeDeletionReplacement
		}
		// Masked deletions keep their upper-case marker and stay unwrapped.
		if g[1] == "c" {
			buf = "<span class=cloze>" + buf + "</span>"
		}
		return buf
	})
	return otherClozesPattern.ReplaceAllString(text, "${2}")
}

// maskMathJaxClozes upper-cases the "c" marker of every deletion of ord that
// sits between MathJax delimiters, so it is not wrapped in a span that would
// break the formula.
func maskMathJaxClozes(text, ord string) string {
	inMathJax := false
	return replaceAllSubmatchFunc(mathJaxPattern(ord), text, func(g []string) string {
		switch {
		case g[1] != "":
			inMathJax = true
		case g[2] != "":
			inMathJax = false
		case inMathJax:
			return "{{C" + g[0][len("{{c"):]
		}
		return g[0]
	})
}

// ClozeNumbers returns the sorted distinct cloze ordinals used in text.
func ClozeNumbers(text string) []int {
	seen := map[int]bool{}
	var ords []int
	for _, m := range clozeOrdPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		ords = append(ords, n)
	}
	sort.Ints(ords)
	return ords
}
