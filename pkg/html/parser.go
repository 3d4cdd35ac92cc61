package html

import (
	"fmt"
	"strings"
)

// Parser builds a Document with an explicit stack of open elements.
type Parser struct {
	tokenizer *Tokenizer
	doc       *Document
	stack     []*Node
	// Links holds the href of every <link rel="stylesheet"> seen.
	Links []string
}

func NewParser(input string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(input),
		doc:       NewDocument(),
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.doc.Root}
	for {
		tok, err := p.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		switch tok.Type {
		case EOFToken:
			return p.doc, nil
		case StartTagToken, SelfClosingTagToken:
			p.startTag(tok)
		case EndTagToken:
			p.closeTag(tok.Data)
		case TextToken:
			p.text(tok.Data)
		}
	}
}

func (p *Parser) startTag(tok Token) {
	switch tok.Data {
	case "style":
		if tok.Type == StartTagToken {
			p.doc.Stylesheets = append(p.doc.Stylesheets, p.tokenizer.ReadRawUntil("style"))
		}
		return
	case "script":
		if tok.Type == StartTagToken {
			p.doc.Scripts = append(p.doc.Scripts, p.tokenizer.ReadRawUntil("script"))
		}
		return
	case "link":
		if rel := tok.Attributes["rel"]; strings.Contains(rel, "stylesheet") && tok.Attributes["href"] != "" {
			p.Links = append(p.Links, tok.Attributes["href"])
		}
	}
	if isBlockElement(tok.Data) {
		p.autoCloseP()
	}
	node := NewElement(tok.Data)
	for k, v := range tok.Attributes {
		node.Attributes[k] = v
	}
	p.currentParent().AddChild(node)
	if tok.Type == StartTagToken && !isVoidElement(tok.Data) {
		p.stack = append(p.stack, node)
	}
}

// text drops whitespace-only runs between elements and collapses the rest.
func (p *Parser) text(data string) {
	if strings.TrimSpace(data) == "" {
		if parent := p.currentParent(); len(parent.Children) == 0 || parent.Children[len(parent.Children)-1].Type != TextNode {
			return
		}
	}
	p.currentParent().AppendText(collapseWhitespace(data))
}

func (p *Parser) currentParent() *Node {
	return p.stack[len(p.stack)-1]
}

// closeTag pops the stack through the matching element; unmatched end tags
// are ignored.
func (p *Parser) closeTag(tag string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tag {
			p.stack = p.stack[:i]
			return
		}
	}
}

// autoCloseP closes an open <p> when a block element starts inside it.
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == "p" {
			p.stack = p.stack[:i]
			return
		}
		if isBlockElement(p.stack[i].TagName) {
			return
		}
	}
}

func isBlockElement(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "dd", "div", "dl", "dt",
		"figcaption", "figure", "footer", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hr", "li", "main", "nav", "ol", "p", "pre", "section", "ul":
		return true
	}
	return false
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// Parse parses markup into a Document.
func Parse(input string) (*Document, error) {
	return NewParser(input).Parse()
}
