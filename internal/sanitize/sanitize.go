// Package sanitize filters user-supplied text before it is rendered back to
// clients. Whitelisted markup survives with whitelisted attributes only;
// anything else is escaped so a browser shows it as text.
package sanitize

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// allowedTags maps each permitted element to the attributes it may keep.
var allowedTags = map[string][]string{
	"a":          {"href", "title", "target"},
	"abbr":       {"title"},
	"b":          nil,
	"blockquote": {"cite"},
	"br":         nil,
	"code":       nil,
	"del":        {"datetime"},
	"div":        nil,
	"em":         nil,
	"h1":         nil,
	"h2":         nil,
	"h3":         nil,
	"h4":         nil,
	"h5":         nil,
	"h6":         nil,
	"hr":         nil,
	"i":          nil,
	"img":        {"src", "alt", "title", "width", "height"},
	"li":         nil,
	"ol":         nil,
	"p":          nil,
	"pre":        nil,
	"s":          nil,
	"small":      nil,
	"span":       nil,
	"strong":     nil,
	"sub":        nil,
	"sup":        nil,
	"u":          nil,
	"ul":         nil,
}

var urlAttrs = map[string]bool{"href": true, "src": true, "cite": true}

var safeSchemes = []string{"http:", "https:", "mailto:", "tel:"}

var textEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// attrEscaper re-encodes a decoded attribute value, ampersand included.
var attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")

// HTML returns s with stored-XSS vectors neutralized. Tags outside the
// whitelist are escaped, event handler attributes are dropped, and URL
// attributes with a non-web scheme are removed. Comments are discarded.
func HTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// A tag left open at the end of input is text, not markup.
			if errors.Is(z.Err(), io.EOF) {
				b.WriteString(textEscaper.Replace(string(z.Raw())))
			}
			return b.String()
		case html.TextToken:
			b.WriteString(textEscaper.Replace(string(z.Raw())))
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			allowed, ok := allowedTags[tok.Data]
			if !ok {
				b.WriteString(textEscaper.Replace(raw))
				continue
			}
			writeTag(&b, tt, tok, allowed)
		case html.CommentToken:
		default:
			b.WriteString(textEscaper.Replace(string(z.Raw())))
		}
	}
}

func writeTag(b *strings.Builder, tt html.TokenType, tok html.Token, allowed []string) {
	if tt == html.EndTagToken {
		b.WriteString("</" + tok.Data + ">")
		return
	}

	b.WriteString("<" + tok.Data)
	for _, a := range tok.Attr {
		if a.Namespace != "" || !contains(allowed, a.Key) {
			continue
		}
		if urlAttrs[a.Key] && !safeURL(a.Val) {
			continue
		}
		b.WriteString(" " + a.Key + `="` + attrEscaper.Replace(a.Val) + `"`)
	}
	if tt == html.SelfClosingTagToken {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
}

// safeURL accepts relative references and absolute URLs with a web or contact
// scheme. v is the entity-decoded value; the caller must re-escape it on
// output so a literal "&colon;" cannot decode a second time.
func safeURL(v string) bool {
	v = strings.ToLower(strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, v))

	colon := strings.IndexByte(v, ':')
	if colon < 0 {
		return true
	}
	if i := strings.IndexAny(v, "/?#"); i >= 0 && i < colon {
		return true
	}
	for _, scheme := range safeSchemes {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
