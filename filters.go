package anki

import (
	"fmt"
	"hash/fnv"
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// FilterContext carries what a filter may need besides the text itself.
type FilterContext struct {
	Name      string // Filter name without arguments, e.g. "hint" or "cq-".
	Extra     string // Argument: the ordinal for cq-/ca-, or "x" in "name(x)".
	FieldName string // Key of the replacement being rendered.
	Tag       string // Handlebar content as written, e.g. "type:Back".
	Lang      language.Tag
	Localizer Localizer
}

// FilterFunc defines the signature for a filter function.
// text is the output of the previous filter (or the field value).
type FilterFunc func(text string, fc FilterContext) (string, error)

// GlobalFilters stores the built-in filter functions. Unknown filter names
// leave the text unchanged.
var GlobalFilters = map[string]FilterFunc{
	"text":     textFilter,
	"type":     typeFilter,
	"cq-":      clozeQuestionFilter,
	"ca-":      clozeAnswerFilter,
	"hint":     hintFilter,
	"kanji":    kanjiFilter,
	"kana":     kanaFilter,
	"furigana": furiganaFilter,
}

// filterArgsPattern splits "name(extra)" into name and extra.
var filterArgsPattern = regexp.MustCompile(`(?s)^(.*?)(?:\((.*)\))?$`)

// splitFilter returns the registry name of a filter and its argument.
func splitFilter(filter string) (name, extra string) {
	if strings.HasPrefix(filter, "cq-") || strings.HasPrefix(filter, "ca-") {
		return filter[:3], strings.SplitN(filter[3:], "-", 2)[0]
	}
	m := filterArgsPattern.FindStringSubmatch(filter)
	if m == nil {
		return filter, ""
	}
	return m[1], m[2]
}

// textFilter strips HTML from the text.
// Usage: {{text:Front}}
func textFilter(text string, _ FilterContext) (string, error) {
	return StripHTML(text), nil
}

// typeFilter leaves a marker that the card viewer replaces with an answer box.
// Usage: {{type:Back}} -> "[[type:Back]]"
func typeFilter(_ string, fc FilterContext) (string, error) {
	return "[[" + fc.Tag + "]]", nil
}

// clozeQuestionFilter hides cloze deletion fc.Extra.
// Usage: {{cq-1:Text}}
func clozeQuestionFilter(text string, fc FilterContext) (string, error) {
	return ClozeText(text, fc.Extra, true), nil
}

// clozeAnswerFilter reveals cloze deletion fc.Extra.
// Usage: {{ca-1:Text}}
func clozeAnswerFilter(text string, fc FilterContext) (string, error) {
	return ClozeText(text, fc.Extra, false), nil
}

// hintFilter collapses the text behind a "Show <field>" link.
// Usage: {{hint:Extra}}
func hintFilter(text string, fc FilterContext) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	id := hintDOMID(fc.FieldName, text)
	label := html.EscapeString(fc.Localizer.Text(fc.Lang, MsgShowHint, fc.FieldName))
	return fmt.Sprintf(`<a class=hint href="#" onclick="this.style.display='none';document.getElementById('%[1]s').style.display='block';return false;">%[2]s</a><div id="%[1]s" class=hint style="display: none">%[3]s</div>`,
		id, label, text), nil
}

// hintDOMID derives a stable element id from the field name and the text.
func hintDOMID(fieldName, text string) string {
	h := fnv.New32a()
	h.Write([]byte(fieldName))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return fmt.Sprintf("hint%08x", h.Sum32())
}

func kanjiFilter(text string, _ FilterContext) (string, error) {
	return Kanji(text), nil
}

func kanaFilter(text string, _ FilterContext) (string, error) {
	return Kana(text), nil
}

func furiganaFilter(text string, _ FilterContext) (string, error) {
	return Furigana(text), nil
}

// replaceAllSubmatchFunc replaces every match of re in s with the result of
// repl. repl receives the whole match and its groups; a group that did not
// take part in the match is "".
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return s
	}
	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		sb.WriteString(s[last:loc[0]])
		sb.WriteString(repl(groups))
		last = loc[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}
