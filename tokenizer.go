package anki

import (
	"strings"
	"unicode"
)

// AltHandlebarDirective switches a template to the legacy "<% %>" delimiters
// when it appears at the start of the template (leading whitespace ignored).
const AltHandlebarDirective = "{{=<% %>=}}"

const (
	newOpen     = "{{"
	newClose    = "}}"
	legacyOpen  = "<%"
	legacyClose = "%>"
)

// TokenKind defines the category of a lexed Token.
type TokenKind int

// Enumerates the different kinds of tokens produced by the Tokenizer.
const (
	TokenText             TokenKind = iota // Literal text between handlebars.
	TokenReplacement                       // {{Field}} or {{filter:Field}}.
	TokenOpenConditional                   // {{#Field}}
	TokenOpenNegated                       // {{^Field}}
	TokenCloseConditional                  // {{/Field}}
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenReplacement:
		return "replacement"
	case TokenOpenConditional:
		return "open_conditional"
	case TokenOpenNegated:
		return "open_negated"
	case TokenCloseConditional:
		return "close_conditional"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a template.
type Token struct {
	Kind TokenKind
	// Text is the literal for TokenText, otherwise the trimmed handlebar
	// content without its leading '#', '^' or '/'.
	Text string
	// Raw is the exact slice of the template consumed by this token.
	Raw string
}

// Tokenizer splits a template string into tokens. It is not resumable: once
// Next has returned an error, HasNext reports false.
type Tokenizer struct {
	remaining string
	legacy    bool
	failed    bool
}

// NewTokenizer creates a Tokenizer for the given template. A leading
// AltHandlebarDirective is stripped and enables legacy "<% %>" handlebars.
func NewTokenizer(template string) *Tokenizer {
	trimmed := strings.TrimLeftFunc(template, unicode.IsSpace)
	if strings.HasPrefix(trimmed, AltHandlebarDirective) {
		return &Tokenizer{remaining: trimmed[len(AltHandlebarDirective):], legacy: true}
	}
	return &Tokenizer{remaining: template}
}

// HasNext reports whether Next can be called.
func (t *Tokenizer) HasNext() bool {
	return t.remaining != "" && !t.failed
}

// Next returns the next token. When a handlebar is opened but never closed it
// returns a *NoClosingBracketsError holding the unconsumed template.
func (t *Tokenizer) Next() (Token, error) {
	if !t.HasNext() {
		return Token{}, errTokenizerDone
	}
	tok, rest, ok := nextToken(t.remaining, t.legacy)
	if !ok {
		t.failed = true
		return Token{}, &NoClosingBracketsError{Remaining: t.remaining}
	}
	t.remaining = rest
	return tok, nil
}

// Tokenize lexes the whole template.
func Tokenize(template string) ([]Token, error) {
	var tokens []Token
	tz := NewTokenizer(template)
	for tz.HasNext() {
		tok, err := tz.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// NewToLegacy rewrites "{{" and "}}" into their legacy "<%" and "%>" forms.
func NewToLegacy(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, newOpen, legacyOpen), newClose, legacyClose)
}

func nextToken(template string, legacy bool) (Token, string, bool) {
	if tok, rest, ok := textToken(template, legacy); ok {
		return tok, rest, true
	}
	return handlebarToken(template, legacy)
}

// textToken consumes everything up to the earliest handlebar opening. It
// fails when the template starts with a handlebar or is empty.
func textToken(template string, legacy bool) (Token, string, bool) {
	size := strings.Index(template, newOpen)
	if legacy {
		if legacyIdx := strings.Index(template, legacyOpen); legacyIdx != -1 && (size == -1 || legacyIdx < size) {
			size = legacyIdx
		}
	}
	if size == -1 {
		size = len(template)
	}
	if size == 0 {
		return Token{}, "", false
	}
	text := template[:size]
	return Token{Kind: TokenText, Text: text, Raw: text}, template[size:], true
}

func handlebarToken(template string, legacy bool) (Token, string, bool) {
	if tok, rest, ok := delimitedToken(template, newOpen, newClose); ok {
		return tok, rest, true
	}
	if legacy {
		return delimitedToken(template, legacyOpen, legacyClose)
	}
	return Token{}, "", false
}

func delimitedToken(template, open, close string) (Token, string, bool) {
	if !strings.HasPrefix(template, open) {
		return Token{}, "", false
	}
	end := strings.Index(template[len(open):], close)
	if end == -1 {
		return Token{}, "", false
	}
	end += len(open)
	tok := classifyHandle(template[len(open):end])
	tok.Raw = template[:end+len(close)]
	return tok, template[end+len(close):], true
}

// classifyHandle decides the kind of a handlebar from its inner content.
// Extra leading braces ("{{{#Field}}}") are ignored.
func classifyHandle(handle string) Token {
	start := strings.TrimSpace(strings.TrimLeft(handle, "{"))
	if len(start) < 2 {
		return Token{Kind: TokenReplacement, Text: start}
	}
	switch start[0] {
	case '#':
		return Token{Kind: TokenOpenConditional, Text: strings.TrimSpace(start[1:])}
	case '^':
		return Token{Kind: TokenOpenNegated, Text: strings.TrimSpace(start[1:])}
	case '/':
		return Token{Kind: TokenCloseConditional, Text: strings.TrimSpace(start[1:])}
	default:
		return Token{Kind: TokenReplacement, Text: start}
	}
}
