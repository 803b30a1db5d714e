package anki

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"
)

func TestSplitFilter(t *testing.T) {
	tests := []struct {
		filter    string
		wantName  string
		wantExtra string
	}{
		{"text", "text", ""},
		{"cq-1", "cq-", "1"},
		{"ca-12", "ca-", "12"},
		{"cq-3-extra", "cq-", "3"},
		{"tts(en_US)", "tts", "en_US"},
		{"odd(", "odd(", ""},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			name, extra := splitFilter(tt.filter)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantExtra, extra)
		})
	}
}

func TestBuiltinFilters(t *testing.T) {
	fields := map[string]string{
		"Front":   "<b>word</b> &amp; more",
		"Back":    "answer",
		"Text":    "A {{c1::foo::hintA}} {{c2::bar}} B",
		"Reading": "漢字[かんじ]",
		"Blank":   " ",
	}
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"text", "{{text:Front}}", "word & more"},
		{"type", "{{type:Back}}", "[[type:Back]]"},
		{"type on empty field", "{{type:}}", "[[type:]]"},
		{"type of a cloze", "{{type:cloze:Text}}", "[[type:cloze:Text]]"},
		{"cloze question", "{{cq-2:Text}}", "A foo <span class=cloze>[...]</span> B"},
		{"cloze answer", "{{ca-1:Text}}", "A <span class=cloze>foo</span> bar B"},
		{"missing cloze", "{{cq-5:Text}}", ""},
		{"kanji", "{{kanji:Reading}}", "漢字"},
		{"kana", "{{kana:Reading}}", "かんじ"},
		{"filters chain", "{{furigana:kanji:Reading}}", "漢字"},
		{"furigana", "{{furigana:Reading}}", "<ruby><rb>漢字</rb><rt>かんじ</rt></ruby>"},
		{"blank hint", "{{hint:Blank}}", ""},
		{"hint on empty field", "{{hint:}}", ""},
		{"unknown filter", "{{nope:Back}}", "answer"},
		{"unknown filter with argument", "{{tts(en_US):Back}}", "answer"},
	}
	r := NewRenderer(WithCache(NewTemplateCache(16)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Render(tt.template, fields, true, language.English))
		})
	}
}

func TestHintFilter(t *testing.T) {
	r := NewRenderer(WithCache(NewTemplateCache(4)))
	fields := map[string]string{"Extra": "more <i>info</i>"}

	got := r.Render("{{hint:Extra}}", fields, false, language.English)

	id := hintDOMID("Extra", "more <i>info</i>")
	assert.Equal(t,
		`<a class=hint href="#" onclick="this.style.display='none';document.getElementById('`+id+`').style.display='block';return false;">Show Extra</a>`+
			`<div id="`+id+`" class=hint style="display: none">more <i>info</i></div>`,
		got)
	assert.Regexp(t, `^hint[0-9a-f]{8}$`, id)
	assert.NotEqual(t, id, hintDOMID("Other", "more <i>info</i>"))

	fr := r.Render("{{hint:Extra}}", fields, false, language.French)
	assert.Contains(t, fr, ">Afficher Extra</a>")
}

func TestCustomFilters(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	var gotExtra, gotField string
	r := NewRenderer(
		WithCache(NewTemplateCache(8)),
		WithLogger(zap.New(core)),
		WithFilter("upper", func(text string, fc FilterContext) (string, error) {
			gotExtra, gotField = fc.Extra, fc.FieldName
			return fmt.Sprintf("<%s>", text), nil
		}),
		WithFilter("boom", func(string, FilterContext) (string, error) {
			return "", errors.New("kaboom")
		}),
		WithFilter("panic", func(string, FilterContext) (string, error) {
			panic("unreachable state")
		}),
		WithFilter("text", func(text string, _ FilterContext) (string, error) {
			return "overridden", nil
		}),
	)
	fields := map[string]string{"Front": "word"}

	assert.Equal(t, "<word>", r.Render("{{upper(loud):Front}}", fields, true, language.English))
	assert.Equal(t, "loud", gotExtra)
	assert.Equal(t, "Front", gotField)

	assert.Equal(t, "overridden", r.Render("{{text:Front}}", fields, true, language.English))

	assert.Equal(t, "a Error in filter boom b", r.Render("a {{boom:Front}} b", fields, true, language.English))
	assert.Equal(t, 1, logs.FilterMessage("Error applying filter").Len())

	assert.Equal(t, "Erreur dans le filtre panic", r.Render("{{panic:Front}}", fields, true, language.French))
	assert.Equal(t, 1, logs.FilterMessage("Filter panicked").Len())

	// The placeholder replaces the whole chain so far; later filters still run.
	assert.Equal(t, "<Error in filter boom>", r.Render("{{upper:boom:Front}}", fields, true, language.English))

	// Other renderers keep the built-in filters.
	assert.Equal(t, "word", NewRenderer().Render("{{text:Front}}", fields, true, language.English))
}
