package api

import (
	"context"
	"net/http"
	"time"

	"github.com/eringen/pubdesk/editor"
)

// ContentType is a user-defined schema that groups posts, e.g. "post".
type ContentType struct {
	ID          editor.ID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	PostCount   int        `json:"post_count"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ContentTypeInput creates or renames a content type.
type ContentTypeInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ContentTypes lists the account's content types.
func (c *Client) ContentTypes(ctx context.Context, token string) ([]ContentType, error) {
	const op = "content_types.list"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodGet, path: []string{"content-types"}, token: token})
	if err != nil {
		return nil, err
	}
	types := []ContentType{}
	if err := decodeData(op, env, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// CreateContentType creates a content type.
func (c *Client) CreateContentType(ctx context.Context, token string, in ContentTypeInput) (ContentType, error) {
	const op = "content_types.create"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodPost, path: []string{"content-types"}, token: token, body: in})
	if err != nil {
		return ContentType{}, err
	}
	var ct ContentType
	err = decodeData(op, env, &ct)
	return ct, err
}

// UpdateContentType renames a content type.
func (c *Client) UpdateContentType(ctx context.Context, token string, id editor.ID, in ContentTypeInput) error {
	_, _, _, err := c.do(ctx, call{op: "content_types.update", root: c.baseURL, method: http.MethodPut, path: []string{"content-types", id.String()}, token: token, body: in})
	return err
}

// DeleteContentType removes a content type.
func (c *Client) DeleteContentType(ctx context.Context, token string, id editor.ID) error {
	_, _, _, err := c.do(ctx, call{op: "content_types.delete", root: c.baseURL, method: http.MethodDelete, path: []string{"content-types", id.String()}, token: token})
	return err
}

// Posts lists the posts of a content type. List endpoints send the flat
// post shape.
func (c *Client) Posts(ctx context.Context, token, contentType string) ([]editor.Post, error) {
	const op = "posts.list"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodGet, path: []string{"content-types", contentType, "posts"}, token: token})
	if err != nil {
		return nil, err
	}
	posts := []editor.Post{}
	if err := decodeData(op, env, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches one post. The single-item endpoint wraps the post under
// "data"; the body is decoded as a tagged PostSource so callers never see
// the shape difference.
func (c *Client) Post(ctx context.Context, token string, id editor.ID) (editor.PostSource, error) {
	const op = "posts.get"
	_, _, raw, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodGet, path: []string{"posts", id.String()}, token: token})
	if err != nil {
		return editor.PostSource{}, err
	}
	src, err := editor.DecodePostSource(raw)
	if err != nil {
		return editor.PostSource{}, wrapDecode(op, err)
	}
	return src, nil
}

// CreatePost creates a post under a content type.
func (c *Client) CreatePost(ctx context.Context, token, contentType string, p editor.PostPayload) (editor.Post, error) {
	const op = "posts.create"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodPost, path: []string{"content-types", contentType, "posts"}, token: token, body: p})
	if err != nil {
		return editor.Post{}, err
	}
	var created editor.Post
	err = decodeData(op, env, &created)
	return created, err
}

// UpdatePost replaces a post's fields.
func (c *Client) UpdatePost(ctx context.Context, token string, id editor.ID, p editor.PostPayload) error {
	_, _, _, err := c.do(ctx, call{op: "posts.update", root: c.baseURL, method: http.MethodPut, path: []string{"posts", id.String()}, token: token, body: p})
	return err
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, token string, id editor.ID) error {
	_, _, _, err := c.do(ctx, call{op: "posts.delete", root: c.baseURL, method: http.MethodDelete, path: []string{"posts", id.String()}, token: token})
	return err
}
