package ogimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 1200
	Height = 630

	titleScale          = 5
	textScale           = 3
	titleMaxLines       = 3
	descriptionMaxLines = 3
	marginX             = 78

	defaultBackground = "#1f2937"
	defaultAccent     = "#3b82f6"
)

// Card holds the text and theme colors of one social preview image.
type Card struct {
	Title           string
	Description     string
	SiteName        string
	BackgroundColor string
	AccentColor     string
}

var face = basicfont.Face7x13

// Generate draws the card as a Width x Height PNG. Output is byte-identical for
// identical cards.
func Generate(c Card) ([]byte, error) {
	card := normalizeCard(c)

	background, ok := parseHexColor(card.BackgroundColor)
	if !ok {
		background, _ = parseHexColor(defaultBackground)
	}
	accent, ok := parseHexColor(card.AccentColor)
	if !ok {
		accent, _ = parseHexColor(defaultAccent)
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillRect(img, img.Bounds(), background)
	fillRect(img, image.Rect(0, 0, 24, Height), accent)
	fillRect(img, image.Rect(0, Height-70, Width, Height), shade(background))

	light := color.RGBA{R: 241, G: 245, B: 249, A: 255}
	muted := color.RGBA{R: 203, G: 213, B: 225, A: 255}

	maxWidth := Width - 2*marginX
	y := drawScaledLines(img, wrapLines(card.SiteName, maxWidth/textScale, 1), marginX, 60, textScale, accent)
	y = drawScaledLines(img, wrapLines(card.Title, maxWidth/titleScale, titleMaxLines), marginX, y+40, titleScale, light)
	drawScaledLines(img, wrapLines(card.Description, maxWidth/textScale, descriptionMaxLines), marginX, y+32, textScale, muted)

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

// drawScaledLines renders lines with the bitmap face at 1x and scales them
// into dst at (x, y). It returns the y coordinate below the last line.
func drawScaledLines(dst draw.Image, lines []string, x, y, scale int, c color.Color) int {
	lineHeight := face.Metrics().Height.Ceil()
	for _, line := range lines {
		w := textWidth(line)
		if w == 0 {
			y += lineHeight * scale
			continue
		}
		src := image.NewRGBA(image.Rect(0, 0, w, lineHeight))
		drawer := &font.Drawer{
			Dst:  src,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
		}
		drawer.DrawString(line)
		target := image.Rect(x, y, x+w*scale, y+lineHeight*scale)
		xdraw.NearestNeighbor.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
		y += lineHeight * scale
	}
	return y
}

func normalizeCard(c Card) Card {
	return Card{
		Title:           normalizeWhitespace(c.Title),
		Description:     normalizeWhitespace(c.Description),
		SiteName:        normalizeWhitespace(c.SiteName),
		BackgroundColor: strings.ToLower(strings.TrimSpace(c.BackgroundColor)),
		AccentColor:     strings.ToLower(strings.TrimSpace(c.AccentColor)),
	}
}

func normalizeWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func fillRect(img draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func shade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 4 * 3, G: c.G / 4 * 3, B: c.B / 4 * 3, A: 255}
}

func wrapLines(text string, maxWidth, maxLines int) []string {
	text = normalizeWhitespace(text)
	if text == "" || maxLines <= 0 {
		return nil
	}

	words := strings.Split(text, " ")
	lines := make([]string, 0, maxLines)
	wordIndex := 0
	for wordIndex < len(words) && len(lines) < maxLines {
		line := words[wordIndex]
		wordIndex++
		if textWidth(line) > maxWidth {
			lines = append(lines, fitWithEllipsis(line, maxWidth))
			continue
		}
		for wordIndex < len(words) {
			candidate := line + " " + words[wordIndex]
			if textWidth(candidate) > maxWidth {
				break
			}
			line = candidate
			wordIndex++
		}
		lines = append(lines, line)
	}

	if wordIndex < len(words) && len(lines) > 0 {
		lines[len(lines)-1] = fitWithEllipsis(lines[len(lines)-1]+" ...", maxWidth)
	}
	return lines
}

func fitWithEllipsis(text string, maxWidth int) string {
	const ellipsis = "..."
	if textWidth(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + ellipsis
		if textWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

func textWidth(text string) int {
	return font.MeasureString(face, text).Ceil()
}

// parseHexColor parses #rgb or #rrggbb.
func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	var rgb [3]byte
	for i := range rgb {
		hi, lo := hexNibble(s[2*i]), hexNibble(s[2*i+1])
		if hi < 0 || lo < 0 {
			return color.RGBA{}, false
		}
		rgb[i] = byte(hi<<4 | lo)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
}

func hexNibble(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return -1
	}
}
