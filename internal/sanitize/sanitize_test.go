package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   `Just a "quoted" title & more`,
			want: `Just a "quoted" title & more`,
		},
		{
			name: "script tag escaped",
			in:   `Naughty naughty very naughty <script>alert("xss");</script>`,
			want: `Naughty naughty very naughty &lt;script&gt;alert("xss");&lt;/script&gt;`,
		},
		{
			name: "onerror handler stripped, strong kept",
			in:   `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`,
			want: `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`,
		},
		{
			name: "javascript href removed",
			in:   `<a href="javascript:alert(1)" title="x">click</a>`,
			want: `<a title="x">click</a>`,
		},
		{
			name: "obfuscated javascript scheme removed",
			in:   `<a href=" JaVa	Script:alert(1)">click</a>`,
			want: `<a>click</a>`,
		},
		{
			name: "relative and https links kept",
			in:   `<a href="/docs?q=1">docs</a> <a href="https://example.com">ex</a>`,
			want: `<a href="/docs?q=1">docs</a> <a href="https://example.com">ex</a>`,
		},
		{
			name: "uppercase tags normalized",
			in:   `<STRONG onclick="x()">loud</STRONG>`,
			want: `<strong>loud</strong>`,
		},
		{
			name: "self closing br",
			in:   `line<br/>next`,
			want: `line<br />next`,
		},
		{
			name: "comment dropped",
			in:   `a<!-- secret -->b`,
			want: `ab`,
		},
		{
			name: "bare angle brackets escaped",
			in:   `1 < 2 > 0`,
			want: `1 &lt; 2 &gt; 0`,
		},
		{
			name: "unknown tag with attributes escaped whole",
			in:   `<iframe src="https://evil.example"></iframe>`,
			want: `&lt;iframe src="https://evil.example"&gt;&lt;/iframe&gt;`,
		},
		{
			name: "attribute quotes re-escaped",
			in:   `<img alt='say "hi"'>`,
			want: `<img alt="say &quot;hi&quot;">`,
		},
		{
			name: "double-encoded colon stays inert",
			in:   `<a href="javascript&amp;colon;alert(1)">x</a>`,
			want: `<a href="javascript&amp;colon;alert(1)">x</a>`,
		},
		{
			name: "double-encoded scheme letter stays inert",
			in:   `<a href="&amp;#106;avascript:alert(1)">x</a>`,
			want: `<a href="&amp;#106;avascript:alert(1)">x</a>`,
		},
		{
			name: "ampersand in query re-encoded",
			in:   `<a href="/s?a=1&amp;b=2">s</a>`,
			want: `<a href="/s?a=1&amp;b=2">s</a>`,
		},
		{
			name: "trailing unterminated tag kept as text",
			in:   `Compare x <y`,
			want: `Compare x &lt;y`,
		},
		{
			name: "unterminated img escaped",
			in:   `<img src=x onerror=alert(1)`,
			want: `&lt;img src=x onerror=alert(1)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTML(tt.in))
		})
	}
}

func TestSafeURL(t *testing.T) {
	assert.True(t, safeURL("https://example.com"))
	assert.True(t, safeURL("mailto:a@example.com"))
	assert.True(t, safeURL("page.html"))
	assert.True(t, safeURL("/a:b"))
	assert.False(t, safeURL("javascript:alert(1)"))
	assert.False(t, safeURL("data:text/html;base64,AAAA"))
	assert.False(t, safeURL("vbscript:msgbox"))
}
