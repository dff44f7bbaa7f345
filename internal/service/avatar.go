package service

import (
	"bytes"
	"encoding/hex"
	"image"
	"image/draw"
	_ "image/gif" // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/crypto/blake2b"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	AvatarMaxSize      = 512
	AvatarWebPQuality  = 80
	avatarHashHexChars = 16
)

// encodedAvatar is a processed avatar ready for upload.
type encodedAvatar struct {
	Body        []byte
	ContentType string
	Ext         string
}

func isAllowedAvatarMIME(content []byte) bool {
	switch http.DetectContentType(content) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// processAvatar decodes content, center-crops it to a square no larger than
// AvatarMaxSize and encodes it as WebP or PNG.
func processAvatar(content []byte, asWebP bool) (*encodedAvatar, error) {
	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	square := resizeSquare(cropSquare(decoded), AvatarMaxSize)

	buf := bytes.NewBuffer(nil)
	if asWebP {
		if err := webp.Encode(buf, square, &webp.Options{Quality: AvatarWebPQuality}); err != nil {
			return nil, err
		}
		return &encodedAvatar{Body: buf.Bytes(), ContentType: "image/webp", Ext: "webp"}, nil
	}
	if err := png.Encode(buf, square); err != nil {
		return nil, err
	}
	return &encodedAvatar{Body: buf.Bytes(), ContentType: "image/png", Ext: "png"}, nil
}

func cropSquare(src image.Image) image.Image {
	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side <= 0 || (b.Dx() == side && b.Dy() == side) {
		return src
	}
	x := b.Min.X + (b.Dx()-side)/2
	y := b.Min.Y + (b.Dy()-side)/2
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
}

func resizeSquare(src image.Image, max int) image.Image {
	b := src.Bounds()
	if b.Dx() <= max {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, max, max))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// avatarKey is "<auth_id>/avatar-<hash>.<ext>". The hash changes with the
// content so clients never see a stale cached avatar.
func avatarKey(authID string, body []byte, ext string) string {
	sum := blake2b.Sum256(body)
	return strings.ToLower(authID) + "/avatar-" + hex.EncodeToString(sum[:])[:avatarHashHexChars] + "." + ext
}
