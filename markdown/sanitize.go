package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var reDataSrc = regexp.MustCompile(`^data:image/(?:png|jpeg|gif|webp);base64,[A-Za-z0-9+/]+=*$`)

// policy allows the tags Normalize emits plus the inline markup a
// contenteditable surface produces. div is left out: a stray closing div
// would end the editing surface. Images may only carry data URIs.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br",
		"h1", "h2", "h3",
		"strong", "b", "em", "i", "u", "s",
		"ul", "ol", "li", "blockquote",
	)
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AllowDataURIImages()
	p.AllowAttrs("src").Matching(reDataSrc).OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	return p
}

// Sanitize strips every element and attribute outside the editor's
// allow-list from an HTML fragment.
func Sanitize(fragment string) string {
	return policy.Sanitize(fragment)
}
