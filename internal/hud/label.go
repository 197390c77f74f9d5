package hud

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// Rasterize draws text in white on a transparent image just large enough to hold it.
// Rows are flipped so the image can be uploaded as-is for bottom-up texture coordinates.
func Rasterize(text string) *image.RGBA {
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := metrics.Height.Ceil()
	if width == 0 {
		width = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
	return transform.FlipV(img)
}

// Uploader writes an image into texture id, creating it when id is 0.
type Uploader func(id uint32, img *image.RGBA) uint32

// Label is a line of text cached as a texture. The texture is only
// re-uploaded when the text changes.
type Label struct {
	text    string
	texture uint32
	width   int
	height  int
	upload  Uploader
}

func NewLabel(upload Uploader) *Label {
	return &Label{upload: upload}
}

// Set updates the text and reports whether the texture was re-uploaded.
func (l *Label) Set(text string) bool {
	if text == l.text && l.texture != 0 {
		return false
	}
	img := Rasterize(text)
	l.text = text
	l.width, l.height = img.Rect.Dx(), img.Rect.Dy()
	l.texture = l.upload(l.texture, img)
	return true
}

func (l *Label) Text() string {
	return l.text
}

func (l *Label) Texture() uint32 {
	return l.texture
}

// Size is the label size in pixels.
func (l *Label) Size() (int, int) {
	return l.width, l.height
}
