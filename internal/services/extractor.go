package services

import (
	"strings"

	"golang.org/x/net/html"
)

// pageText collects the text of <title> and <article> elements while a
// document is tokenized. Tracking is a plain flag per element, not a stack:
// the first closing tag of a tracked name stops tracking even when elements
// of the same name are nested.
type pageText struct {
	inTitle   bool
	inArticle bool
	title     strings.Builder
	article   strings.Builder
}

func (p *pageText) startTag(name string) {
	switch name {
	case "article":
		p.inArticle = true
	case "title":
		p.inTitle = true
	}
}

func (p *pageText) endTag(name string) {
	switch name {
	case "article":
		p.inArticle = false
	case "title":
		p.inTitle = false
	}
}

func (p *pageText) text(data string) {
	if p.inTitle {
		p.title.WriteString(data)
	}
	if p.inArticle {
		p.article.WriteString(data)
	}
}

func (p *pageText) String() string {
	return p.title.String() + "\n" + p.article.String()
}

// ExtractText returns the title text and the article text of an HTML
// document, separated by a newline. Malformed markup is never an error.
func ExtractText(doc string) string {
	var p pageText
	z := html.NewTokenizer(strings.NewReader(doc))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return p.String()
		case html.StartTagToken:
			name := tagName(z)
			p.startTag(name)
		case html.SelfClosingTagToken:
			name := tagName(z)
			p.startTag(name)
			p.endTag(name)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.endTag(string(name))
		case html.TextToken:
			p.text(string(z.Text()))
		}
	}
}

// tagName reads the current tag name. Only script and style keep their
// content as raw text; every other element, including title, noscript,
// textarea and iframe, is tokenized as markup so tags inside it produce
// events instead of leaking into the collected text.
func tagName(z *html.Tokenizer) string {
	raw, _ := z.TagName()
	name := string(raw)
	switch name {
	case "script", "style":
	default:
		z.NextIsNotRawText()
	}
	return name
}
