package imagepipe

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// decodeBMP decodes a BMP byte stream whose pixel data is laid out in A,B,G,R
// channel order per pixel (spec.md §4.5's non-standard byte layout), forcing
// full opacity when the bit depth isn't 32 or every decoded alpha byte comes
// back zero. Supports only uncompressed 24 and 32 bit-depth BMPs, which is
// all the fallback path is asked to handle.
func decodeBMP(data []byte) (image.Image, error) {
	if len(data) < 54 || data[0] != 'B' || data[1] != 'M' {
		return nil, fmt.Errorf("not a BMP file")
	}

	pixelOffset := binary.LittleEndian.Uint32(data[10:14])
	headerSize := binary.LittleEndian.Uint32(data[14:18])
	if headerSize < 40 || int(14+headerSize) > len(data) {
		return nil, fmt.Errorf("unsupported BMP header size %d", headerSize)
	}

	width := int(int32(binary.LittleEndian.Uint32(data[18:22])))
	rawHeight := int32(binary.LittleEndian.Uint32(data[22:26]))
	bitDepth := binary.LittleEndian.Uint16(data[28:30])
	compression := binary.LittleEndian.Uint32(data[30:34])

	if width <= 0 {
		return nil, fmt.Errorf("invalid BMP width %d", width)
	}
	if compression != 0 {
		return nil, fmt.Errorf("unsupported BMP compression %d", compression)
	}
	if bitDepth != 32 && bitDepth != 24 {
		return nil, fmt.Errorf("unsupported BMP bit depth %d", bitDepth)
	}

	topDown := rawHeight < 0
	height := int(rawHeight)
	if height < 0 {
		height = -height
	}
	if height <= 0 {
		return nil, fmt.Errorf("invalid BMP height")
	}

	bytesPerPixel := int(bitDepth / 8)
	rowSize := ((width*bytesPerPixel + 3) / 4) * 4
	if int(pixelOffset)+rowSize*height > len(data) {
		return nil, fmt.Errorf("BMP pixel data truncated")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	allAlphaZero := true

	for y := 0; y < height; y++ {
		srcRow := y
		if !topDown {
			srcRow = height - 1 - y
		}
		rowStart := int(pixelOffset) + srcRow*rowSize
		for x := 0; x < width; x++ {
			px := rowStart + x*bytesPerPixel
			var a, b, g, r byte
			if bytesPerPixel == 4 {
				a, b, g, r = data[px], data[px+1], data[px+2], data[px+3]
			} else {
				a = 0xff
				b, g, r = data[px], data[px+1], data[px+2]
			}
			if a != 0 {
				allAlphaZero = false
			}
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}

	if bitDepth != 32 || allAlphaZero {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := img.RGBAAt(x, y)
				c.A = 0xff
				img.SetRGBA(x, y, c)
			}
		}
	}

	return img, nil
}
