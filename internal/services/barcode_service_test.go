package services

import (
	"bytes"
	"image/png"
	"testing"
)

func TestPublicDeviceURL(t *testing.T) {
	got := PublicDeviceURL("https://console.example.com", "abc-123")
	want := "https://console.example.com/public/device/abc-123"
	if got != want {
		t.Fatalf("PublicDeviceURL = %q, want %q", got, want)
	}
}

func TestBrandAccessURLEscapesQuery(t *testing.T) {
	got := BrandAccessURL("https://console.example.com", "Acme & Co", "tok/1+2")
	want := "https://console.example.com/?brand=Acme+%26+Co&token=tok%2F1%2B2"
	if got != want {
		t.Fatalf("BrandAccessURL = %q, want %q", got, want)
	}
}

func TestGenerateBrandAccessQRRequiresBrandAndToken(t *testing.T) {
	s := NewBarcodeService()
	if _, err := s.GenerateBrandAccessQR("http://x", "", "tok"); err == nil {
		t.Fatal("missing brand must be rejected")
	}
	if _, err := s.GenerateBrandAccessQR("http://x", "Acme", ""); err == nil {
		t.Fatal("missing token must be rejected")
	}
}

func TestGenerateDeviceQRIsPNG(t *testing.T) {
	s := NewBarcodeService()
	data, err := s.GenerateDeviceQR("https://console.example.com", "abc-123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("expected a PNG, decode failed: %v", err)
	}
}

func TestGenerateDeviceLabelIsPNG(t *testing.T) {
	s := NewBarcodeService()
	data, err := s.GenerateDeviceLabel("RTR-55X")
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected a PNG, decode failed: %v", err)
	}
	if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 100 {
		t.Fatalf("unexpected label size %v", img.Bounds())
	}
}
