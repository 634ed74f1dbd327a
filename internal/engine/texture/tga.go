package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types this decoder reads.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

// ErrTGATruncated reports pixel data shorter than the header promises.
var ErrTGATruncated = errors.New("tga: truncated")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bytesPerPix int
	topDown     bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, ErrTGATruncated
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bytesPerPix: int(data[16]) / 8,
		topDown:     data[17]&0x20 != 0,
	}
	switch {
	case h.colorMap != 0:
		return h, errors.New("tga: color-mapped images not supported")
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	case h.bytesPerPix != 3 && h.bytesPerPix != 4:
		return h, fmt.Errorf("tga: unsupported depth %d bits", int(data[16]))
	}
	return h, nil
}

// DecodeTGA decodes uncompressed or RLE true-color TGA data, 24 or 32
// bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	r := &tgaReader{h: h, src: data[offset:], img: image.NewRGBA(image.Rect(0, 0, h.width, h.height))}
	if h.imageType == TGATypeUncompressed {
		err = r.readRaw(h.width * h.height)
	} else {
		err = r.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

// tgaReader walks BGR(A) source pixels and writes them in scan order.
type tgaReader struct {
	h     tgaHeader
	src   []byte
	pos   int
	pixel int
	img   *image.RGBA
}

func (r *tgaReader) next() (color.RGBA, error) {
	n := r.h.bytesPerPix
	if r.pos+n > len(r.src) {
		return color.RGBA{}, ErrTGATruncated
	}
	p := r.src[r.pos : r.pos+n]
	r.pos += n
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if n == 4 {
		c.A = p[3]
	}
	return c, nil
}

func (r *tgaReader) put(c color.RGBA) {
	x, y := r.pixel%r.h.width, r.pixel/r.h.width
	if !r.h.topDown {
		y = r.h.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}

func (r *tgaReader) readRaw(count int) error {
	for i := 0; i < count; i++ {
		c, err := r.next()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) readRLE() error {
	total := r.h.width * r.h.height
	for r.pixel < total {
		if r.pos >= len(r.src) {
			return ErrTGATruncated
		}
		packet := r.src[r.pos]
		r.pos++
		count := min(int(packet&0x7F)+1, total-r.pixel)

		if packet&0x80 == 0 {
			if err := r.readRaw(count); err != nil {
				return err
			}
			continue
		}
		c, err := r.next()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			r.put(c)
		}
	}
	return nil
}
