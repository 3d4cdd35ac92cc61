package html

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	StartTagToken TokenType = iota
	EndTagToken
	SelfClosingTagToken
	TextToken
	CommentToken
	DoctypeToken
	EOFToken
)

type Token struct {
	Type       TokenType
	Data       string
	Attributes map[string]string
}

// Tokenizer splits markup into tags and text. It is forgiving: malformed
// constructs degrade to text rather than failing.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

func (t *Tokenizer) NextToken() (Token, error) {
	if t.pos >= len(t.input) {
		return Token{Type: EOFToken}, nil
	}
	if t.input[t.pos] != '<' {
		return t.readText(), nil
	}
	rest := t.input[t.pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		end := strings.Index(rest[4:], "-->")
		if end < 0 {
			t.pos = len(t.input)
			return Token{Type: CommentToken, Data: rest[4:]}, nil
		}
		t.pos += 4 + end + 3
		return Token{Type: CommentToken, Data: rest[4 : 4+end]}, nil
	case strings.HasPrefix(rest, "<!"):
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return Token{}, fmt.Errorf("unterminated declaration at offset %d", t.pos)
		}
		t.pos += end + 1
		return Token{Type: DoctypeToken, Data: strings.TrimSpace(rest[2:end])}, nil
	case len(rest) > 1 && (rest[1] == '/' || isTagNameChar(rest[1])):
		return t.readTag()
	}
	// A lone '<' is text.
	t.pos++
	return Token{Type: TextToken, Data: "<"}, nil
}

func (t *Tokenizer) readTag() (Token, error) {
	start := t.pos
	t.pos++ // '<'
	tok := Token{Type: StartTagToken, Attributes: map[string]string{}}
	if t.peek() == '/' {
		tok.Type = EndTagToken
		t.pos++
	}
	tok.Data = strings.ToLower(t.readWhile(isTagNameChar))
	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return Token{}, fmt.Errorf("unterminated tag at offset %d", start)
		}
		switch c := t.input[t.pos]; {
		case c == '>':
			t.pos++
			return tok, nil
		case c == '/' && t.pos+1 < len(t.input) && t.input[t.pos+1] == '>':
			t.pos += 2
			if tok.Type == StartTagToken {
				tok.Type = SelfClosingTagToken
			}
			return tok, nil
		case isAttributeNameChar(c):
			name := strings.ToLower(t.readWhile(isAttributeNameChar))
			t.skipWhitespace()
			value := ""
			if t.peek() == '=' {
				t.pos++
				t.skipWhitespace()
				value = t.readAttributeValue()
			}
			tok.Attributes[name] = decodeEntities(value)
		default:
			t.pos++
		}
	}
}

func (t *Tokenizer) readAttributeValue() string {
	if q := t.peek(); q == '"' || q == '\'' {
		t.pos++
		end := strings.IndexByte(t.input[t.pos:], q)
		if end < 0 {
			v := t.input[t.pos:]
			t.pos = len(t.input)
			return v
		}
		v := t.input[t.pos : t.pos+end]
		t.pos += end + 1
		return v
	}
	return t.readWhile(func(c byte) bool {
		return c != '>' && c != ' ' && c != '\t' && c != '\n' && c != '\r'
	})
}

func (t *Tokenizer) readText() Token {
	end := strings.IndexByte(t.input[t.pos:], '<')
	if end < 0 {
		end = len(t.input) - t.pos
	}
	data := t.input[t.pos : t.pos+end]
	t.pos += end
	return Token{Type: TextToken, Data: decodeEntities(data)}
}

// ReadRawUntil returns everything up to the matching end tag (used for
// <style> and <script>) and consumes the end tag.
func (t *Tokenizer) ReadRawUntil(tag string) string {
	closing := "</" + tag
	idx := strings.Index(strings.ToLower(t.input[t.pos:]), closing)
	if idx < 0 {
		raw := t.input[t.pos:]
		t.pos = len(t.input)
		return raw
	}
	raw := t.input[t.pos : t.pos+idx]
	t.pos += idx
	if gt := strings.IndexByte(t.input[t.pos:], '>'); gt >= 0 {
		t.pos += gt + 1
	} else {
		t.pos = len(t.input)
	}
	return raw
}

func (t *Tokenizer) peek() byte {
	if t.pos < len(t.input) {
		return t.input[t.pos]
	}
	return 0
}

func (t *Tokenizer) readWhile(ok func(byte) bool) string {
	start := t.pos
	for t.pos < len(t.input) && ok(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *Tokenizer) skipWhitespace() {
	t.readWhile(func(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' })
}

func isTagNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

func isAttributeNameChar(c byte) bool {
	return isTagNameChar(c) || c == '_' || c == ':' || c == '.'
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
)

func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityReplacer.Replace(s)
}
