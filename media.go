package pubdesk

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/editor"
	"github.com/eringen/pubdesk/views"
)

const (
	maxImageWidth  = 1600
	maxAvatarWidth = 256
	jpegQuality    = 80
	maxUploadSize  = 10 << 20 // 10MB
)

var (
	errNoImage       = errors.New("no image file provided")
	errImageTooLarge = errors.New("file too large (max 10MB)")
)

// processedImage is an upload re-encoded as a JPEG data URI.
type processedImage struct {
	DataURI string
	Width   int
	Height  int
	Size    int
}

// processImage decodes an image from src, resizes it to at most maxWidth
// pixels wide, and encodes it as a JPEG data URI.
func processImage(src io.Reader, maxWidth int) (processedImage, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return processedImage{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth {
		newH := max(h*maxWidth/w, 1)
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return processedImage{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return processedImage{
		DataURI: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   w,
		Height:  h,
		Size:    buf.Len(),
	}, nil
}

// readImageUpload processes the multipart file in field. It returns
// errNoImage when the field is empty.
func readImageUpload(c echo.Context, field string, maxWidth int) (processedImage, string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return processedImage{}, "", errNoImage
		}
		return processedImage{}, "", err
	}
	if file.Size > maxUploadSize {
		return processedImage{}, "", errImageTooLarge
	}
	src, err := file.Open()
	if err != nil {
		return processedImage{}, "", err
	}
	defer src.Close()

	img, err := processImage(io.LimitReader(src, maxUploadSize), maxWidth)
	if err != nil {
		return processedImage{}, "", err
	}
	return img, file.Filename, nil
}

// uploadMessage is the text shown for a rejected upload.
func uploadMessage(err error) string {
	switch {
	case errors.Is(err, errNoImage):
		return "Choose an image to upload."
	case errors.Is(err, errImageTooLarge):
		return "That file is too large. The limit is 10MB."
	}
	return "That file is not a PNG, JPEG or GIF image."
}

func (a *App) handleMedia(c echo.Context) error {
	media, err := a.Cache.Media(c.Request().Context(), BearerToken(c))
	if err != nil {
		return a.upstreamError(c, "list media", err)
	}
	return Render(c, a.Views.Media(views.MediaPage{
		Shell: a.shell(c, "Media", "media"),
		Items: media,
	}))
}

func (a *App) handleMediaUpload(c echo.Context) error {
	img, name, err := readImageUpload(c, "image", maxImageWidth)
	if err != nil {
		return redirectWithFlash(c, "/media/", views.Failure(uploadMessage(err)))
	}
	token := BearerToken(c)
	_, err = a.API.UploadMedia(c.Request().Context(), token, api.MediaUpload{
		Name:    uploadName(name),
		Alt:     strings.TrimSpace(c.FormValue("alt")),
		DataURI: img.DataURI,
		Width:   img.Width,
		Height:  img.Height,
	})
	if err != nil {
		return a.mutationError(c, "upload media", err, "/media/")
	}
	a.Cache.InvalidateMedia(token)
	return redirectWithFlash(c, "/media/", views.Success("Image uploaded."))
}

func (a *App) handleMediaDelete(c echo.Context) error {
	token := BearerToken(c)
	if err := a.API.DeleteMedia(c.Request().Context(), token, editor.ID(c.Param("id"))); err != nil {
		return a.mutationError(c, "delete media", err, "/media/")
	}
	a.Cache.InvalidateMedia(token)
	return redirectWithFlash(c, "/media/", views.Success("Image deleted."))
}
