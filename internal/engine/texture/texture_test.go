package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func tgaHeaderBytes(imageType byte, w, h int, bpp byte, topDown bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topDown {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGA_Uncompressed(t *testing.T) {
	// 2x1, bottom-up, BGR.
	data := append(tgaHeaderBytes(TGATypeUncompressed, 2, 1, 24, false),
		0, 0, 255, // red
		255, 0, 0, // blue
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v, want red", got)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel 1 = %v, want blue", got)
	}
}

func TestDecodeTGA_BottomUpFlip(t *testing.T) {
	data := append(tgaHeaderBytes(TGATypeUncompressed, 1, 2, 32, false),
		0, 255, 0, 255, // first row in file is the bottom row
		0, 0, 0, 128,
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 1); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("bottom pixel = %v, want green", got)
	}
	if got := rgba.RGBAAt(0, 0).A; got != 128 {
		t.Errorf("top alpha = %d, want 128", got)
	}
}

func TestDecodeTGA_RLE(t *testing.T) {
	data := append(tgaHeaderBytes(TGATypeRLE, 4, 1, 24, true),
		0x82, 10, 20, 30, // run of 3
		0x00, 1, 2, 3, // one raw pixel
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba := img.(*image.RGBA)
	for x := 0; x < 3; x++ {
		if got := rgba.RGBAAt(x, 0); got != (color.RGBA{30, 20, 10, 255}) {
			t.Errorf("pixel %d = %v", x, got)
		}
	}
	if got := rgba.RGBAAt(3, 0); got != (color.RGBA{3, 2, 1, 255}) {
		t.Errorf("pixel 3 = %v", got)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeaderBytes(2, 1, 1, 24, false); h[1] = 1; return h }()},
		{"unsupported type", tgaHeaderBytes(3, 1, 1, 24, false)},
		{"unsupported depth", tgaHeaderBytes(2, 1, 1, 16, false)},
		{"truncated pixels", append(tgaHeaderBytes(2, 2, 2, 24, false), 1, 2, 3)},
		{"truncated rle", append(tgaHeaderBytes(10, 2, 1, 24, false), 0x81)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := DecodeTGA(append(tgaHeaderBytes(2, 2, 2, 24, false), 1, 2, 3))
	if !errors.Is(err, ErrTGATruncated) {
		t.Errorf("err = %v, want ErrTGATruncated", err)
	}
}

func TestDecodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(buf.Bytes(), ".png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{200, 100, 50, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeUnknown(t *testing.T) {
	if _, err := Decode([]byte("not an image"), ".png"); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("does/not/exist.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToRGBA_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{1, 2, 3, 255})
	got := ToRGBA(src)
	if got.Bounds().Min != (image.Point{}) {
		t.Fatalf("bounds = %v, want zero origin", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("pixel = %v", c)
	}
}

func TestChecker(t *testing.T) {
	a := color.RGBA{255, 255, 255, 255}
	b := color.RGBA{0, 0, 0, 255}
	img := Checker(8, 2, a, b)
	if img.Bounds().Dx() != 8 {
		t.Fatalf("size = %d", img.Bounds().Dx())
	}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, a},
		{4, 0, b},
		{0, 4, b},
		{7, 7, a},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
