package anki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuriganaFilters(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kanji    string
		kana     string
		furigana string
	}{
		{
			name:     "single reading",
			text:     "漢字[かんじ]です",
			kanji:    "漢字です",
			kana:     "かんじです",
			furigana: "<ruby><rb>漢字</rb><rt>かんじ</rt></ruby>です",
		},
		{
			name:     "separating space is dropped",
			text:     "日本語 漢字[かんじ]",
			kanji:    "日本語漢字",
			kana:     "日本語かんじ",
			furigana: "日本語<ruby><rb>漢字</rb><rt>かんじ</rt></ruby>",
		},
		{
			name:     "two readings",
			text:     "日本[にほん] 語[ご]",
			kanji:    "日本語",
			kana:     "にほんご",
			furigana: "<ruby><rb>日本</rb><rt>にほん</rt></ruby><ruby><rb>語</rb><rt>ご</rt></ruby>",
		},
		{
			name:     "sound reference is kept",
			text:     "x[sound:a.mp3]",
			kanji:    "x[sound:a.mp3]",
			kana:     "x[sound:a.mp3]",
			furigana: "x[sound:a.mp3]",
		},
		{
			name:     "no readings",
			text:     "plain text",
			kanji:    "plain text",
			kana:     "plain text",
			furigana: "plain text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kanji, Kanji(tt.text), "kanji")
			assert.Equal(t, tt.kana, Kana(tt.text), "kana")
			assert.Equal(t, tt.furigana, Furigana(tt.text), "furigana")
		})
	}
}
