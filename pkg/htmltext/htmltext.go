// Package htmltext reduces HTML fragments to plain text for machine clients.
//
// Whitespace inside text is collapsed, lines are never wrapped, links are
// rendered as "text [href]" (or just the text when it equals the href),
// list items become "* item" lines and images are dropped unless asked for.
//
//	htmltext.FromString(`<strong>Hi</strong> <a href="https://x.io">docs</a>`, htmltext.Options{})
//	// "Hi docs [https://x.io]"
package htmltext

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options tune the conversion.
type Options struct {
	// LinkBaseURL is prefixed to hrefs that are not absolute.
	LinkBaseURL string
	// ShowLinkHrefIfSameAsText keeps the bracketed href even when it repeats the link text.
	ShowLinkHrefIfSameAsText bool
	// KeepImages renders images as their alt text instead of dropping them.
	KeepImages bool
}

type listState struct {
	ordered bool
	index   int
}

type converter struct {
	opts    Options
	out     textWriter
	link    *textWriter
	href    string
	lists   []listState
	skipTag atom.Atom
}

// FromString converts an HTML fragment to plain text.
func FromString(s string, opts Options) string {
	if !strings.ContainsAny(s, "<&") {
		var w textWriter
		w.text(s)
		return w.String()
	}

	c := &converter{opts: opts}
	z := html.NewTokenizer(strings.NewReader(s))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		tok := z.Token()
		if c.skipTag != 0 {
			if tt == html.EndTagToken && tok.DataAtom == c.skipTag {
				c.skipTag = 0
			}
			continue
		}

		switch tt {
		case html.TextToken:
			c.writer().text(tok.Data)
		case html.StartTagToken, html.SelfClosingTagToken:
			c.start(tok, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			c.end(tok)
		}
	}

	if c.link != nil {
		c.closeLink()
	}
	return c.out.String()
}

func (c *converter) writer() *textWriter {
	if c.link != nil {
		return c.link
	}
	return &c.out
}

func (c *converter) start(tok html.Token, selfClosing bool) {
	switch tok.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title:
		if !selfClosing {
			c.skipTag = tok.DataAtom
		}
	case atom.A:
		if c.link != nil {
			c.closeLink()
		}
		c.href = attr(tok, "href")
		c.link = &textWriter{}
		if selfClosing {
			c.closeLink()
		}
	case atom.Img:
		if c.opts.KeepImages {
			if alt := attr(tok, "alt"); alt != "" {
				c.writer().word(alt)
			}
		}
	case atom.Br:
		c.writer().newline()
	case atom.Ul:
		c.out.blockBreak()
		c.lists = append(c.lists, listState{})
	case atom.Ol:
		c.out.blockBreak()
		c.lists = append(c.lists, listState{ordered: true})
	case atom.Li:
		c.out.blockBreak()
		prefix := "*"
		if n := len(c.lists); n > 0 {
			c.lists[n-1].index++
			if c.lists[n-1].ordered {
				prefix = strconv.Itoa(c.lists[n-1].index) + "."
			}
			c.out.raw(strings.Repeat("  ", n-1))
		}
		c.out.raw(prefix + " ")
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Table, atom.Tr, atom.Blockquote, atom.Pre, atom.Section, atom.Article, atom.Hr:
		c.out.blockBreak()
	case atom.Td, atom.Th:
		c.writer().space()
	}
}

func (c *converter) end(tok html.Token) {
	switch tok.DataAtom {
	case atom.A:
		if c.link != nil {
			c.closeLink()
		}
	case atom.Ul, atom.Ol:
		if n := len(c.lists); n > 0 {
			c.lists = c.lists[:n-1]
		}
		c.out.blockBreak()
	case atom.Li, atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Table, atom.Tr, atom.Blockquote, atom.Pre, atom.Section, atom.Article:
		c.out.blockBreak()
	}
}

func (c *converter) closeLink() {
	text := c.link.String()
	href := c.resolve(c.href)
	c.link = nil
	c.href = ""

	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		c.out.word(text)
	case text == "":
		c.out.word(href)
	case text == href && !c.opts.ShowLinkHrefIfSameAsText:
		c.out.word(text)
	default:
		c.out.word(text + " [" + href + "]")
	}
}

func (c *converter) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || c.opts.LinkBaseURL == "" || strings.HasPrefix(href, "#") || hasScheme(href) {
		return href
	}
	return c.opts.LinkBaseURL + href
}

func hasScheme(href string) bool {
	if strings.HasPrefix(href, "//") {
		return true
	}
	i := strings.Index(href, ":")
	if i <= 0 {
		return false
	}
	for _, r := range href[:i] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textWriter accumulates words with collapsed whitespace.
type textWriter struct {
	b       strings.Builder
	pending bool
}

func (w *textWriter) text(s string) {
	if s == "" {
		return
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsSpace(first) {
		w.space()
	}
	for i, f := range strings.Fields(s) {
		if i > 0 {
			w.space()
		}
		w.word(f)
	}
	if unicode.IsSpace(last) {
		w.space()
	}
}

func (w *textWriter) space() { w.pending = true }

func (w *textWriter) word(s string) {
	if s == "" {
		return
	}
	if w.pending && w.b.Len() > 0 && !w.atLineStart() {
		w.b.WriteByte(' ')
	}
	w.pending = false
	w.b.WriteString(s)
}

// raw writes s at the current position without spacing rules.
func (w *textWriter) raw(s string) {
	w.pending = false
	w.b.WriteString(s)
}

func (w *textWriter) newline() {
	w.pending = false
	w.b.WriteByte('\n')
}

func (w *textWriter) blockBreak() {
	if w.b.Len() > 0 && !w.atLineStart() {
		w.newline()
	}
	w.pending = false
}

func (w *textWriter) atLineStart() bool {
	s := w.b.String()
	return s == "" || s[len(s)-1] == '\n' || strings.HasSuffix(s, "* ") || strings.HasSuffix(s, ". ")
}

func (w *textWriter) String() string {
	lines := strings.Split(w.b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
