package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func TestEnsureJFIFAPP0_AddsMarker(t *testing.T) {
	// Minimal JPEG without APP0
	data := []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04}

	out, added, err := EnsureJFIFAPP0(data, DpiPxPerInch, webDensity, webDensity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected marker to be added")
	}
	if len(out) <= len(data) {
		t.Fatal("expected output to grow")
	}
	if out[0] != 0xFF || out[1] != 0xD8 {
		t.Fatal("expected SOI marker preserved")
	}
	if !bytes.Equal(out[2:4], []byte{0xFF, 0xE0}) {
		t.Fatal("expected JFIF APP0 marker at position 2-3")
	}
	// density unit and values land right behind the version bytes
	if out[13] != byte(DpiPxPerInch) {
		t.Fatalf("expected density unit %d, got %d", DpiPxPerInch, out[13])
	}
	if out[15] != webDensity || out[17] != webDensity {
		t.Fatal("expected declared web density in both directions")
	}
}

func TestEnsureJFIFAPP0_AlreadyPresent(t *testing.T) {
	// Minimal JPEG with APP0 already present
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	out, added, err := EnsureJFIFAPP0(data, DpiPxPerInch, webDensity, webDensity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Fatal("expected no marker addition")
	}
	if !bytes.Equal(out, data) {
		t.Fatal("expected same bytes")
	}
}

func TestEnsureJFIFAPP0_Rejects(t *testing.T) {
	for _, data := range [][]byte{nil, {0xFF, 0xD8}, {0x00, 0x01, 0x02, 0x03}} {
		if _, _, err := EnsureJFIFAPP0(data, DpiPxPerInch, webDensity, webDensity); err == nil {
			t.Fatalf("expected error for %v", data)
		}
	}
}

func TestEncodeJPEGForWeb(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 0xA0
	}
	src.Set(2, 2, color.RGBA{R: 255, A: 255})

	data, err := encodeJPEGForWeb(src, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data[2:4], []byte{0xFF, 0xE0}) {
		t.Fatal("expected JFIF APP0 right after SOI")
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("produced jpeg does not decode: %v", err)
	}
}
