// Package scan decodes uploaded photos of brand access QR codes so a
// guest without a camera-equipped entry path can still join via an
// image file.
package scan

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/image/draw"
)

// maxDecodeDim bounds the working image. Phone photos come in far
// larger than the decoder needs; downscaling keeps decode time flat.
const maxDecodeDim = 1200

// BrandAccess is the payload parsed out of a scanned access QR.
type BrandAccess struct {
	Brand string
	Token string
}

// Decoder reads QR codes out of uploaded images.
type Decoder struct {
	reader gozxing.Reader
}

func NewDecoder() *Decoder {
	return &Decoder{reader: qrcode.NewQRCodeReader()}
}

// DecodeImage extracts the text of the first QR code in the image data.
// PNG and JPEG are accepted.
func (d *Decoder) DecodeImage(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img = downscale(img)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("prepare bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_POSSIBLE_FORMATS: []gozxing.BarcodeFormat{
			gozxing.BarcodeFormat_QR_CODE,
		},
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	result, err := d.reader.Decode(bmp, hints)
	if err != nil || result == nil {
		return "", fmt.Errorf("no QR code found")
	}
	return result.GetText(), nil
}

// DecodeBrandAccess decodes the image and parses the brand access
// payload out of the QR text.
func (d *Decoder) DecodeBrandAccess(data []byte) (*BrandAccess, error) {
	text, err := d.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return ParseBrandAccess(text)
}

// ParseBrandAccess extracts brand and token from a scanned QR text. The
// expected shape is a console entry URL carrying brand and token query
// parameters.
func ParseBrandAccess(text string) (*BrandAccess, error) {
	text = strings.TrimSpace(text)
	u, err := url.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unrecognized QR payload")
	}

	brand := u.Query().Get("brand")
	token := u.Query().Get("token")
	if brand == "" || token == "" {
		return nil, fmt.Errorf("QR payload carries no brand access token")
	}
	return &BrandAccess{Brand: brand, Token: token}, nil
}

// downscale shrinks the image so its longest edge fits maxDecodeDim.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDecodeDim && h <= maxDecodeDim {
		return img
	}

	scale := float64(maxDecodeDim) / float64(w)
	if h > w {
		scale = float64(maxDecodeDim) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
