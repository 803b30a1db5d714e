package anki

import "strings"

// TokenSource yields tokens one by one. *Tokenizer implements it.
type TokenSource interface {
	HasNext() bool
	Next() (Token, error)
}

// Parser builds a Node tree from the tokens of a template.
type Parser struct {
	tokens TokenSource
}

// NewParser creates a new Parser instance for the given template string.
func NewParser(template string) *Parser {
	return &Parser{tokens: NewTokenizer(template)}
}

// ParseTokens parses an already lexed token sequence.
func ParseTokens(tokens []Token) (*Node, error) {
	return (&Parser{tokens: &tokenSlice{tokens: tokens}}).ParseAll()
}

// ParseAll consumes the whole template. On failure no partial tree is returned.
func (p *Parser) ParseAll() (*Node, error) {
	return p.parseInner("", false)
}

// parseInner parses siblings until the close tag of openKey (when open is
// set) or the end of the template.
func (p *Parser) parseInner(openKey string, open bool) (*Node, error) {
	var nodes []*Node
	for p.tokens.HasNext() {
		tok, err := p.tokens.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenText:
			nodes = append(nodes, TextNode(tok.Text))
		case TokenReplacement:
			nodes = append(nodes, parseReplacement(tok.Text))
		case TokenOpenConditional, TokenOpenNegated:
			child, err := p.parseInner(tok.Text, true)
			if err != nil {
				return nil, err
			}
			if tok.Kind == TokenOpenConditional {
				nodes = append(nodes, ConditionalNode(tok.Text, child))
			} else {
				nodes = append(nodes, NegatedConditionalNode(tok.Text, child))
			}
		case TokenCloseConditional:
			if !open {
				return nil, &ConditionalNotOpenError{Key: tok.Text}
			}
			if tok.Text != openKey {
				return nil, &WrongConditionalClosedError{Found: tok.Text, Expected: openKey}
			}
			return SequenceNode(nodes), nil
		}
	}
	if open {
		return nil, &ConditionalNotClosedError{Key: openKey}
	}
	return SequenceNode(nodes), nil
}

// parseReplacement splits "f2:f1:Field" into the key "Field" and the filters
// in the order they run: f1 then f2.
func parseReplacement(content string) *Node {
	parts := strings.Split(content, ":")
	key := parts[len(parts)-1]
	var filters []string
	for i := len(parts) - 2; i >= 0; i-- {
		filters = append(filters, parts[i])
	}
	return ReplacementNode(key, filters, content)
}

type tokenSlice struct {
	tokens []Token
	pos    int
}

func (s *tokenSlice) HasNext() bool { return s.pos < len(s.tokens) }

func (s *tokenSlice) Next() (Token, error) {
	if !s.HasNext() {
		return Token{}, errTokenizerDone
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}
