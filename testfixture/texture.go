package testfixture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/vecrt/rt/scene"
)

// CheckerTexture synthesizes a size x size (must be a power of two,
// matching scene.Texture's addressing invariant) checkerboard pattern
// alternating colorA/colorB every tileSize pixels, packed the same way
// a real texture asset would be.
func CheckerTexture(size, tileSize int, colorA, colorB scene.Vec3) *scene.Texture {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	a := image.NewUniform(vecColor(colorA))
	b := image.NewUniform(vecColor(colorB))

	for y := 0; y < size; y += tileSize {
		for x := 0; x < size; x += tileSize {
			tile := a
			if (x/tileSize+y/tileSize)%2 == 1 {
				tile = b
			}
			rect := image.Rect(x, y, x+tileSize, y+tileSize)
			draw.Draw(img, rect, tile, image.Point{}, draw.Src)
		}
	}

	pixels := make([]uint32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels[y*size+x] = uint32(r>>8)<<16 | uint32(g>>8)<<8 | uint32(b>>8)
		}
	}
	return &scene.Texture{Width: size, Height: size, Pixels: pixels}
}

func vecColor(v scene.Vec3) color.Color {
	return color.NRGBA{R: clampByte(v[0]), G: clampByte(v[1]), B: clampByte(v[2]), A: 255}
}

func clampByte(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
