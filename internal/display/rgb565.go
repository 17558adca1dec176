package display

import (
	"image"
	"image/color"
)

func rgb565From888(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// encodeRGB565 writes img little-endian into dst, one row per stride bytes.
// Pixels outside dst are dropped.
func encodeRGB565(dst []byte, stride int, img image.Image) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y) * stride
		for x := b.Min.X; x < b.Max.X; x++ {
			off := row + (x-b.Min.X)*2
			if off < 0 || off+1 >= len(dst) || (x-b.Min.X)*2+1 >= stride {
				break
			}
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			p := rgb565From888(c.R, c.G, c.B)
			dst[off] = byte(p)
			dst[off+1] = byte(p >> 8)
		}
	}
}
