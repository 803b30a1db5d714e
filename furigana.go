package anki

import (
	"regexp"
	"strings"
)

// furiganaPattern matches "base[reading]", optionally preceded by the space
// that separates it from earlier text.
var furiganaPattern = regexp.MustCompile(` ?([^ >]+?)\[(.+?)\]`)

func replaceReadings(text string, repl func(base, reading string) string) string {
	return replaceAllSubmatchFunc(furiganaPattern, text, func(g []string) string {
		// [sound:file.mp3] is an audio reference, not a reading.
		if strings.HasPrefix(g[2], "sound:") {
			return g[0]
		}
		return repl(g[1], g[2])
	})
}

// Kanji keeps the base text of every annotated word.
func Kanji(text string) string {
	return replaceReadings(text, func(base, _ string) string { return base })
}

// Kana keeps the reading of every annotated word.
func Kana(text string) string {
	return replaceReadings(text, func(_, reading string) string { return reading })
}

// Furigana turns every annotated word into ruby markup.
func Furigana(text string) string {
	return replaceReadings(text, func(base, reading string) string {
		return "<ruby><rb>" + base + "</rb><rt>" + reading + "</rt></ruby>"
	})
}
