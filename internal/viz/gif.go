package viz

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

const maxPaletteSize = 256

// Image rasterizes the canvas, drawing each braille dot as a charW/2 x
// charH/4 block in its cell color. Cells beyond the palette size fall back
// to the first foreground color.
func (c *Canvas) Image(charW, charH int, bg string) *image.Paletted {
	palette := color.Palette{hexColor(bg, color.Black)}
	index := map[string]uint8{}
	for i := range c.Colors {
		for _, hex := range c.Colors[i] {
			if _, ok := index[hex]; ok || len(palette) >= maxPaletteSize {
				continue
			}
			index[hex] = uint8(len(palette))
			palette = append(palette, hexColor(hex, color.White))
		}
	}
	if len(palette) == 1 {
		palette = append(palette, color.White)
	}

	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), palette)
	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - brailleBase)
			if pattern <= 0 {
				continue
			}
			idx, ok := index[c.Colors[row][col]]
			if !ok {
				idx = 1
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	return img
}

// WriteGIF encodes frames as a looping animation, delay in 100ths of a second.
func WriteGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

func hexColor(hex string, fallback color.Color) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}
