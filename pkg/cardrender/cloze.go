package cardrender

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	anki "github.com/AlexanderGrooff/anki-template-go"
)

var (
	// clozeHandlePattern matches the start of a handle using the cloze
	// filter, group 1 being the filters written before it. It never spans
	// past the end of a handle.
	clozeHandlePattern = regexp.MustCompile(`\{\{([^}]*?)cloze:`)
	// clozeFieldPattern finds the field of a {{...cloze:Field}} handle.
	clozeFieldPattern = regexp.MustCompile(`\{\{[^}]*?cloze:(?:[^}]?:)*(.+?)\}\}`)
	// legacyClozeFieldPattern finds the field of a <%cloze:Field%> handle.
	legacyClozeFieldPattern = regexp.MustCompile(`<%cloze:(.+?)%>`)
)

const legacyClozeStart = "<%cloze:"

// RewriteCloze points the cloze handles of format at card ordinal ord
// (zero-based): "{{cloze:Text}}" becomes "{{cq-<ord+1>:Text}}" on the question
// and "{{ca-<ord+1>:Text}}" on the answer. On the question, handles starting
// with "type:" are left alone so the typed answer is compared to the whole
// field.
func RewriteCloze(format string, ord int, question bool) string {
	filter := "ca-" + strconv.Itoa(ord+1)
	if question {
		filter = "cq-" + strconv.Itoa(ord+1)
	}

	var sb strings.Builder
	last, pos := 0, 0
	for pos < len(format) {
		loc := clozeHandlePattern.FindStringSubmatchIndex(format[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		before := format[pos+loc[2] : pos+loc[3]]
		if question && strings.HasPrefix(before, "type:") {
			pos = start + 1
			continue
		}
		sb.WriteString(format[last:start])
		sb.WriteString("{{" + before + filter + ":")
		last, pos = end, end
	}
	sb.WriteString(format[last:])

	return strings.ReplaceAll(sb.String(), legacyClozeStart, "<%"+filter+":")
}

// ClozeFields returns the names of the fields that format shows through the
// cloze filter, in order of appearance.
func ClozeFields(format string) []string {
	var names []string
	for _, m := range clozeFieldPattern.FindAllStringSubmatch(format, -1) {
		names = append(names, m[1])
	}
	for _, m := range legacyClozeFieldPattern.FindAllStringSubmatch(format, -1) {
		names = append(names, m[1])
	}
	return names
}

// ClozeNumbersInFields returns the sorted distinct cloze numbers used in any
// of the field values.
func ClozeNumbersInFields(fields map[string]string) []int {
	seen := map[int]bool{}
	var nums []int
	for _, value := range fields {
		for _, n := range anki.ClozeNumbers(value) {
			if !seen[n] {
				seen[n] = true
				nums = append(nums, n)
			}
		}
	}
	sort.Ints(nums)
	return nums
}

// clozeOrds returns the zero-based ordinals of the cloze cards of a note: the
// cloze numbers found in the fields its first template shows with the cloze
// filter. c0 deletions generate no card.
func clozeOrds(nt *NoteType, fields map[string]string) []int {
	seen := map[int]bool{}
	var ords []int
	for _, name := range ClozeFields(nt.Templates[0].QFmt) {
		value, ok := fields[name]
		if !ok {
			continue
		}
		for _, n := range anki.ClozeNumbers(value) {
			if n < 1 || seen[n-1] {
				continue
			}
			seen[n-1] = true
			ords = append(ords, n-1)
		}
	}
	sort.Ints(ords)
	return ords
}
