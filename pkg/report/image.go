package report

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// CaptureWidth is the logical width of an image capture, in pixels.
const CaptureWidth = 1000

// CaptureOptions controls Rasterize. Scale multiplies every dimension
// (default 3) so the capture stays sharp once shrunk onto a page.
type CaptureOptions struct {
	Scale float64
}

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

// Light appearance colors of the capture.
var (
	colWhite    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colInk      = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	colText     = color.RGBA{0x47, 0x55, 0x69, 0xff}
	colMuted    = color.RGBA{0x94, 0xa3, 0xb8, 0xff}
	colPanel    = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	colBorder   = color.RGBA{0xe2, 0xe8, 0xf0, 0xff}
	colChipText = color.RGBA{0x33, 0x41, 0x55, 0xff}
)

type faceKey struct {
	bold bool
	size float64
}

// canvas lays the document out top to bottom. With a nil img it only
// measures, which is how the capture height is found before allocating.
type canvas struct {
	img   *image.RGBA
	scale float64
	width int
	y     int
	faces map[faceKey]font.Face
}

func (c *canvas) px(v float64) int { return int(math.Round(v * c.scale)) }

func (c *canvas) face(bold bool, size float64) (font.Face, error) {
	k := faceKey{bold, size}
	if f, ok := c.faces[k]; ok {
		return f, nil
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size * c.scale, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	c.faces[k] = f
	return f, nil
}

func (c *canvas) close() {
	for _, f := range c.faces {
		f.Close()
	}
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	if c.img == nil {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// drawLine draws one line of text with its top edge at y.
func (c *canvas) drawLine(s string, x, y int, face font.Face, col color.Color) {
	if c.img == nil {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// text draws s wrapped to maxWidth at the cursor and moves the cursor below it.
func (c *canvas) text(s string, x, maxWidth int, face font.Face, col color.Color) {
	for _, line := range wrapPixels(s, face, maxWidth) {
		c.drawLine(line, x, c.y, face, col)
		c.y += lineHeight(face)
	}
}

func measureText(s string, face font.Face, maxWidth int) int {
	return len(wrapPixels(s, face, maxWidth)) * lineHeight(face)
}

func textWidth(s string, face font.Face) int {
	return font.MeasureString(face, s).Ceil()
}

// wrapPixels breaks s on spaces into lines no wider than maxWidth. A single
// word wider than maxWidth gets a line of its own.
func wrapPixels(s string, face font.Face, maxWidth int) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if cur != "" && textWidth(candidate, face) > maxWidth {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = candidate
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// pie draws a donut chart centred on (cx, cy), clockwise from twelve o'clock.
func (c *canvas) pie(cx, cy, outer, inner int, slices []Slice) {
	if c.img == nil {
		return
	}
	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	ro, ri := float64(outer), float64(inner)
	for y := cy - outer; y <= cy+outer; y++ {
		for x := cx - outer; x <= cx+outer; x++ {
			dx, dy := float64(x-cx)+0.5, float64(y-cy)+0.5
			d := math.Hypot(dx, dy)
			if d > ro || d < ri {
				continue
			}
			var col color.Color = colBorder
			if total > 0 {
				a := math.Atan2(dx, -dy)
				if a < 0 {
					a += 2 * math.Pi
				}
				pos := a / (2 * math.Pi) * total
				acc := 0.0
				for _, s := range slices {
					acc += s.Value
					col = s.Color
					if pos < acc {
						break
					}
				}
			}
			c.img.Set(x, y, col)
		}
	}
}

func (c *canvas) layout(doc *Document) error {
	label, err := c.face(true, 14)
	if err != nil {
		return err
	}
	title, err := c.face(true, 34)
	if err != nil {
		return err
	}
	heading, err := c.face(true, 15)
	if err != nil {
		return err
	}
	body, err := c.face(false, 18)
	if err != nil {
		return err
	}
	small, err := c.face(false, 13)
	if err != nil {
		return err
	}

	pad := c.px(40)
	inner := c.width - 2*pad
	c.y = 0

	// Header band in the confidence tone.
	boxWidth := c.px(180)
	titleWidth := inner - boxWidth - c.px(24)
	headerH := pad + lineHeight(label) + c.px(8) + measureText(doc.Disease, title, titleWidth) + pad
	c.fill(image.Rect(0, 0, c.width, headerH), doc.Tone.RGBA())
	c.y = pad
	c.drawLine("TEŞHİS RAPORU", pad, c.y, label, colWhite)
	c.y += lineHeight(label) + c.px(8)
	c.text(doc.Disease, pad, titleWidth, title, colWhite)
	boxX := c.width - pad - boxWidth
	c.drawLine("OLASILIK", boxX, pad, label, colWhite)
	c.drawLine("%"+strconv.Itoa(doc.ConfidencePercent), boxX, pad+lineHeight(label)+c.px(8), title, colWhite)
	c.y = headerH

	// Symptoms-detail block; captures always show it.
	if len(doc.Symptoms) > 0 {
		chipPadX, chipPadY, gap := c.px(16), c.px(10), c.px(12)
		chipH := lineHeight(heading) + 2*chipPadY
		type chip struct{ x, y, w int }
		var chips []chip
		x, row := 0, 0
		for _, s := range doc.Symptoms {
			w := textWidth(s, heading) + 2*chipPadX
			if x > 0 && x+w > inner {
				x, row = 0, row+1
			}
			chips = append(chips, chip{x: x, y: row * (chipH + gap), w: w})
			x += w + gap
		}
		blockH := c.px(24) + lineHeight(heading) + c.px(16) + (row+1)*(chipH+gap) - gap + c.px(24)
		top := c.y
		c.fill(image.Rect(0, top, c.width, top+blockH), colPanel)
		c.fill(image.Rect(0, top+blockH-c.px(1), c.width, top+blockH), colBorder)
		c.y = top + c.px(24)
		c.drawLine("ANALİZ EDİLEN BELİRTİLER", pad, c.y, heading, colChipText)
		c.y += lineHeight(heading) + c.px(16)
		for i, ch := range chips {
			r := image.Rect(pad+ch.x, c.y+ch.y, pad+ch.x+ch.w, c.y+ch.y+chipH)
			c.fill(r, colBorder)
			c.fill(r.Inset(c.px(1)), colWhite)
			c.drawLine(doc.Symptoms[i], r.Min.X+chipPadX, r.Min.Y+chipPadY, heading, colChipText)
		}
		c.y = top + blockH
	}

	c.y += pad

	// Probability distribution.
	c.drawLine("OLASILIK DAĞILIMI", pad, c.y, heading, colInk)
	c.y += lineHeight(heading) + c.px(16)
	outer := c.px(110)
	c.pie(pad+outer, c.y+outer, outer, c.px(73), doc.Chart)
	legendX := pad + 2*outer + c.px(40)
	ly := c.y + c.px(8)
	sw := c.px(14)
	for _, s := range doc.Chart {
		lh := lineHeight(body)
		c.fill(image.Rect(legendX, ly+(lh-sw)/2, legendX+sw, ly+(lh-sw)/2+sw), s.Color)
		c.drawLine(s.Name+"  "+s.Percent(), legendX+sw+c.px(10), ly, body, colText)
		ly += lh + c.px(6)
	}
	c.y = max(c.y+2*outer, ly) + pad

	// Description.
	c.drawLine("HASTALIK TANIMI", pad, c.y, heading, colInk)
	c.y += lineHeight(heading) + c.px(12)
	c.text(doc.Description, pad, inner, body, colText)
	c.y += pad

	if len(doc.Precautions) > 0 {
		c.drawLine("ÖNERİLEN ÖNLEMLER", pad, c.y, heading, colInk)
		c.y += lineHeight(heading) + c.px(12)
		for i, p := range doc.Precautions {
			c.text(strconv.Itoa(i+1)+". "+p, pad, inner, body, colText)
			c.y += c.px(6)
		}
		c.y += pad
	}

	c.text(doc.Disclaimer, pad, inner, small, colMuted)
	c.y += pad
	return nil
}

// Rasterize captures doc as an image in the light appearance, symptoms-detail
// block included.
func Rasterize(doc *Document, opts CaptureOptions) (*image.RGBA, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 3
	}

	c := &canvas{scale: scale, faces: make(map[faceKey]font.Face)}
	defer c.close()
	c.width = c.px(CaptureWidth)

	if err := c.layout(doc); err != nil {
		return nil, err
	}
	c.img = image.NewRGBA(image.Rect(0, 0, c.width, c.y))
	c.fill(c.img.Bounds(), colWhite)
	if err := c.layout(doc); err != nil {
		return nil, err
	}
	return c.img, nil
}

// WritePNG writes the image capture of doc.
func WritePNG(w io.Writer, doc *Document, opts CaptureOptions) error {
	img, err := Rasterize(doc, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
