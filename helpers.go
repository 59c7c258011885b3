package pubdesk

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/eringen/pubdesk/editor"
)

// postsPath is the listing page of a content type.
func postsPath(contentType string) string {
	return "/content-types/" + url.PathEscape(contentType) + "/posts/"
}

// postPath is the edit page of one post.
func postPath(contentType string, id editor.ID) string {
	return postsPath(contentType) + url.PathEscape(id.String()) + "/"
}

// splitList splits a comma separated field, dropping blanks. The result
// is never nil.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// uploadName converts an uploaded filename to a slug with a .jpg extension.
func uploadName(original string) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	slug := editor.Slugify(base)
	if slug == "" {
		slug = "image"
	}
	return slug + ".jpg"
}
