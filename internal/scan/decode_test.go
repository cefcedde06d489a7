package scan

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
)

func blankImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestParseBrandAccess(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *BrandAccess
		wantErr bool
	}{
		{
			name: "entry URL",
			text: "https://console.example.com/?brand=Acme&token=tok123",
			want: &BrandAccess{Brand: "Acme", Token: "tok123"},
		},
		{
			name: "query order does not matter",
			text: "https://console.example.com/?token=tok123&brand=Acme",
			want: &BrandAccess{Brand: "Acme", Token: "tok123"},
		},
		{
			name:    "missing token",
			text:    "https://console.example.com/?brand=Acme",
			wantErr: true,
		},
		{
			name:    "missing brand",
			text:    "https://console.example.com/?token=tok123",
			wantErr: true,
		},
		{
			name:    "unrelated QR content",
			text:    "hello world",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBrandAccess(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if *got != *tt.want {
				t.Fatalf("ParseBrandAccess(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDecodeBrandAccessRoundTrip(t *testing.T) {
	pngBytes, err := qrcode.Encode("https://console.example.com/?brand=Acme&token=tok123", qrcode.Medium, 256)
	if err != nil {
		t.Fatal(err)
	}

	access, err := NewDecoder().DecodeBrandAccess(pngBytes)
	if err != nil {
		t.Fatal(err)
	}
	if access.Brand != "Acme" || access.Token != "tok123" {
		t.Fatalf("unexpected payload: %+v", access)
	}
}

func TestDecodeImageRejectsNonQR(t *testing.T) {
	img := blankImage(64, 64)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	if _, err := NewDecoder().DecodeImage(buf.Bytes()); err == nil {
		t.Fatal("a blank image must not decode")
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, err := NewDecoder().DecodeImage([]byte("not an image")); err == nil {
		t.Fatal("non-image data must be rejected")
	}
}
