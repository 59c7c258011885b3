package api

import (
	"context"
	"net/http"
	"time"

	"github.com/eringen/pubdesk/editor"
)

// MediaItem is an entry in the media library.
type MediaItem struct {
	ID        editor.ID  `json:"id"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	Alt       string     `json:"alt"`
	MimeType  string     `json:"mime_type"`
	Size      int64      `json:"size"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// MediaUpload sends an image as a data URI.
type MediaUpload struct {
	Name    string `json:"name"`
	Alt     string `json:"alt"`
	DataURI string `json:"data"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Media lists the media library.
func (c *Client) Media(ctx context.Context, token string) ([]MediaItem, error) {
	const op = "media.list"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodGet, path: []string{"media"}, token: token})
	if err != nil {
		return nil, err
	}
	items := []MediaItem{}
	if err := decodeData(op, env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UploadMedia adds an image to the media library.
func (c *Client) UploadMedia(ctx context.Context, token string, up MediaUpload) (MediaItem, error) {
	const op = "media.upload"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodPost, path: []string{"media"}, token: token, body: up})
	if err != nil {
		return MediaItem{}, err
	}
	var item MediaItem
	err = decodeData(op, env, &item)
	return item, err
}

// DeleteMedia removes an item from the media library.
func (c *Client) DeleteMedia(ctx context.Context, token string, id editor.ID) error {
	_, _, _, err := c.do(ctx, call{op: "media.delete", root: c.baseURL, method: http.MethodDelete, path: []string{"media", id.String()}, token: token})
	return err
}
