// Package markdown turns the loosely structured markdown stored with a post
// into HTML fragments for the rich-text editing surface.
package markdown

import (
	"context"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reHashOnlyLine = regexp.MustCompile(`(?m)^[ \t]*#+[ \t#]*$`)
	reBlankRun     = regexp.MustCompile(`\n{3,}`)
	reTrailingHash = regexp.MustCompile(`(?m)(?:[ \t]+#+|#{2,})[ \t]*$`)
	reHeading      = regexp.MustCompile(`^(#+)[ \t]+([^#\n]+)$`)
	reBullet       = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+(.+?)[ \t]*$`)
	reNumbered     = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+(.+?)[ \t]*$`)
	reQuote        = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?(.*?)[ \t]*$`)
	reDataImage    = regexp.MustCompile(`!\[([^\]\n]*)\]\((data:image/[a-zA-Z0-9.+-]+;base64,[A-Za-z0-9+/=]+)\)`)
	reAnyImage     = regexp.MustCompile(`!\[[^\]\n]*\]\((?:[^()\n]|\([^()\n]*\))*\)`)
	reBlockStart   = regexp.MustCompile(`^<(?:h[1-3]|ul|ol|blockquote|img|p)[\s>]`)
	reBold         = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic       = regexp.MustCompile(`\*([^*\n]+)\*`)
	reParaSplit    = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
)

// Normalize converts stored post content into sanitized HTML. The steps
// run in a fixed order because each later pattern relies on the cleanup
// done before it. Normalize is not idempotent: running it over its own
// output treats the tags as text, so run it once per content load.
func Normalize(content string) string {
	s := strings.ReplaceAll(content, "\r\n", "\n")
	s = reHashOnlyLine.ReplaceAllString(s, "")
	s = reBlankRun.ReplaceAllString(s, "\n\n")
	s = reTrailingHash.ReplaceAllString(s, "")

	var parts []string
	for _, section := range splitSections(s) {
		if rendered := strings.TrimSpace(renderSection(section)); rendered != "" {
			parts = append(parts, rendered)
		}
	}

	var out []string
	for _, para := range reParaSplit.Split(strings.Join(parts, "\n\n"), -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if !reBlockStart.MatchString(para) {
			para = "<p>" + para + "</p>"
		}
		para = strings.TrimSpace(Sanitize(para))
		if para == "" || para == "<p></p>" {
			continue
		}
		out = append(out, para)
	}
	return strings.Join(out, "\n")
}

// splitSections cuts s so that every valid heading line starts a section.
func splitSections(s string) []string {
	var sections []string
	var cur []string
	for _, line := range strings.Split(s, "\n") {
		if isHeading(line) && len(cur) > 0 {
			sections = append(sections, strings.Join(cur, "\n"))
			cur = nil
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		sections = append(sections, strings.Join(cur, "\n"))
	}
	return sections
}

func isHeading(line string) bool {
	m := reHeading.FindStringSubmatch(line)
	return m != nil && strings.TrimSpace(m[2]) != ""
}

func renderSection(section string) string {
	head, body := "", section
	if first, rest, _ := strings.Cut(section, "\n"); isHeading(first) {
		head, body = renderHeading(first), rest
	}
	body = reBullet.ReplaceAllString(body, "<ul><li>$1</li></ul>")
	body = reNumbered.ReplaceAllString(body, "<ol><li>$1</li></ol>")
	body = reQuote.ReplaceAllString(body, "<blockquote><p>$1</p></blockquote>")
	body = renderImages(body)
	body = formatInline(body)
	if head == "" {
		return body
	}
	return head + "\n\n" + body
}

// renderHeading maps # to h1, ## to h2 and anything deeper to h3.
func renderHeading(line string) string {
	m := reHeading.FindStringSubmatch(line)
	level := len(m[1])
	if level > 3 {
		level = 3
	}
	tag := "h" + strconv.Itoa(level)
	return "<" + tag + ">" + formatInline(strings.TrimSpace(m[2])) + "</" + tag + ">"
}

// renderImages keeps only images embedded as base64 data URIs; any other
// image reference is dropped.
func renderImages(s string) string {
	s = reDataImage.ReplaceAllStringFunc(s, func(m string) string {
		match := reDataImage.FindStringSubmatch(m)
		return `<img src="` + match[2] + `" alt="` + html.EscapeString(match[1]) + `">`
	})
	return reAnyImage.ReplaceAllString(s, "")
}

func formatInline(s string) string {
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	return reItalic.ReplaceAllString(s, "<em>$1</em>")
}

// Component renders an HTML fragment as a templ component. The fragment is
// sanitized again on the way out.
func Component(fragment string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Sanitize(fragment))
		return err
	})
}
