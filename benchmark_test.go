package anki

import (
	"testing"

	"golang.org/x/text/language"
)

func BenchmarkRender(b *testing.B) {
	fields := map[string]string{
		"Front":   "<b>漢字[かんじ]</b>",
		"Back":    "A {{c1::foo::hint}} and \\({{c2::x^2}}\\) {{c3::bar}}",
		"Extra":   "see also",
		"Missing": "",
	}
	benchmarks := []struct {
		name     string
		template string
	}{
		{"Text", "just some static text"},
		{"Replacement", "{{Front}}"},
		{"Conditionals", "{{#Extra}}{{Extra}}{{/Extra}}{{^Missing}}-{{/Missing}}"},
		{"Cloze", "{{cq-2:Back}}"},
		{"FilterChain", "{{furigana:kanji:Front}} {{hint:Extra}} {{text:Front}}"},
	}
	r := NewRenderer(WithCache(NewTemplateCache(len(benchmarks))))
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = r.Render(bm.template, fields, true, language.English)
			}
		})
	}
}

func BenchmarkTokenize(b *testing.B) {
	template := "<div class=front>{{#Front}}{{furigana:Front}}{{/Front}}{{^Back}}<hr id=answer>{{/Back}}{{cq-1:Text}}</div>"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(template); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	template := "{{#A}}{{^B}}{{text:C}}{{/B}}{{hint:D}}{{/A}}{{E}}"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := NewParser(template).ParseAll(); err != nil {
			b.Fatal(err)
		}
	}
}
