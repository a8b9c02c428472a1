// Package storage holds doctor photos: images are normalised to WebP and
// kept in an S3 compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxPhotoBytes = 5 << 20
	MaxPhotoEdge  = 512
	PhotoMIME     = "image/webp"
	photoQuality  = 80
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// ObjectStore is the subset of S3 the photo use cases need.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

var _ ObjectStore = (*S3)(nil)

// Transcode decodes a JPEG, PNG or WebP image, shrinks it so that its longest
// edge is at most MaxPhotoEdge and re-encodes it as lossy WebP.
func Transcode(data []byte) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedImage
	}
	switch format {
	case "jpeg", "png", "webp":
	default:
		return nil, ErrUnsupportedImage
	}

	img := fit(src, MaxPhotoEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: photoQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, edge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= edge && h <= edge {
		return src
	}

	if w >= h {
		h = max(1, h*edge/w)
		w = edge
	} else {
		w = max(1, w*edge/h)
		h = edge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
