package anki

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var imgPattern = regexp.MustCompile(`<img src=["']?([^"'>]+)["']? ?/?>`)

// StripHTML removes markup from s: tags and comments are dropped, the content
// of <style> and <script> elements is discarded and entities are decoded.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	hidden := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce.
			return sb.String()
		case html.TextToken:
			if hidden == 0 {
				sb.Write(z.Text())
			}
		case html.StartTagToken:
			if isHiddenElement(z) {
				hidden++
			}
		case html.EndTagToken:
			if isHiddenElement(z) && hidden > 0 {
				hidden--
			}
		}
	}
}

func isHiddenElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	a := atom.Lookup(name)
	return a == atom.Style || a == atom.Script
}

// StripHTMLMedia is StripHTML that keeps the file names of images, so a
// field holding only a picture still counts as having content.
func StripHTMLMedia(s string) string {
	return StripHTML(imgPattern.ReplaceAllString(s, " $1 "))
}
