// Package editor holds the post editing core: the post record and its two
// wire shapes, the form default reconciler, slug derivation, the submission
// gate and the per-mount editor state.
package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusScheduled Status = "scheduled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

// Statuses lists the statuses in the order the form offers them.
var Statuses = []Status{StatusDraft, StatusPublished, StatusScheduled}

// ID is an upstream record identifier. The API is not consistent about
// sending ids as numbers or strings, so both decode into the same value.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("editor: id is neither string nor number: %s", b)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text.
func (id ID) String() string { return string(id) }

// Int returns the id as an integer when it is numeric.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// CoverImage is the url/alt pair shown above a post.
type CoverImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Post is a post record as the content API sends it.
type Post struct {
	ID           ID          `json:"id,omitempty"`
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	Author       string      `json:"author,omitempty"`
	Content      string      `json:"content"`
	Status       Status      `json:"status"`
	ScheduledAt  *string     `json:"scheduled_at"`
	CoverImage   *CoverImage `json:"cover_image"`
	Tags         []string    `json:"tags"`
	MetaTitle    string      `json:"meta_title"`
	MetaKeywords []string    `json:"meta_keywords"`
	ReadingTime  int         `json:"reading_time"`
	CreatedAt    *time.Time  `json:"created_at,omitempty"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
}

// Shape identifies which wire representation a post arrived in.
type Shape int

const (
	// ShapeNone means there is no post: the editor is creating one.
	ShapeNone Shape = iota
	// ShapeFlat is the list-endpoint shape with fields at the top level.
	ShapeFlat
	// ShapeDetail is the single-item shape with fields nested under "data".
	ShapeDetail
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeDetail:
		return "detail"
	default:
		return "none"
	}
}

// PostSource is a post tagged with the shape it was decoded from.
// The zero value is the "create new" source.
type PostSource struct {
	Shape Shape
	Post  Post
}

// NoPost returns the source used when creating a post.
func NoPost() PostSource { return PostSource{Shape: ShapeNone} }

// FlatPost wraps a post decoded from a list endpoint.
func FlatPost(p Post) PostSource { return PostSource{Shape: ShapeFlat, Post: p} }

// DetailPost wraps a post decoded from a single-item endpoint.
func DetailPost(p Post) PostSource { return PostSource{Shape: ShapeDetail, Post: p} }

// DecodePostSource decodes a post in either wire shape. A top-level "data"
// key marks the detail shape; empty input or a JSON null is ShapeNone.
func DecodePostSource(raw []byte) (PostSource, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return NoPost(), nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return PostSource{}, fmt.Errorf("editor: decode post: %w", err)
	}
	if data, ok := fields["data"]; ok {
		var p Post
		data = bytes.TrimSpace(data)
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			if err := json.Unmarshal(data, &p); err != nil {
				return PostSource{}, fmt.Errorf("editor: decode post data: %w", err)
			}
		}
		return DetailPost(p), nil
	}
	var p Post
	if err := json.Unmarshal(raw, &p); err != nil {
		return PostSource{}, fmt.Errorf("editor: decode post: %w", err)
	}
	return FlatPost(p), nil
}
