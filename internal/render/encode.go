package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects a terminal encoding.
type Mode int

const (
	ModeColor Mode = iota
	ModeBraille
)

func (m Mode) String() string {
	switch m {
	case ModeColor:
		return "color"
	case ModeBraille:
		return "braille"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "color", "colour", "":
		return ModeColor, nil
	case "braille":
		return ModeBraille, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Next cycles through the modes.
func (m Mode) Next() Mode {
	if m == ModeColor {
		return ModeBraille
	}
	return ModeColor
}

// PixelSize is the framebuffer size that fills cols×rows terminal cells.
// Half-blocks pack two pixels per cell vertically, braille packs 2×4.
func PixelSize(m Mode, cols, rows int) (int, int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if m == ModeBraille {
		return cols * 2, rows * 4
	}
	return cols, rows * 2
}

// Encode renders fb for the terminal in mode m.
func Encode(m Mode, fb *Framebuffer, bg colorful.Color) string {
	if m == ModeBraille {
		return Braille(fb, bg)
	}
	return HalfBlock(fb)
}

// HalfBlock packs two rows per line: the upper pixel is the foreground of
// '▀' and the lower pixel is its background.
func HalfBlock(fb *Framebuffer) string {
	var b strings.Builder
	styles := map[[2]string]lipgloss.Style{}
	for y := 0; y < fb.H; y += 2 {
		for x := 0; x < fb.W; x++ {
			top := fb.At(x, y).Clamped().Hex()
			bot := top
			if y+1 < fb.H {
				bot = fb.At(x, y+1).Clamped().Hex()
			}
			key := [2]string{top, bot}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(top)).
					Background(lipgloss.Color(bot))
				styles[key] = st
			}
			b.WriteString(st.Render("▀"))
		}
		if y+2 < fb.H {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Braille lights every dot that differs visibly from the background and
// colours each cell by its brightest dot.
func Braille(fb *Framebuffer, bg colorful.Color) string {
	c := NewCanvas((fb.W+1)/2, (fb.H+3)/4)
	base := Luminance(bg)
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			p := fb.Pix[y*fb.W+x]
			if Luminance(p)-base > brailleThreshold {
				c.Set(x, y, p)
			}
		}
	}
	return strings.TrimSuffix(c.Styled(), "\n")
}

const brailleThreshold = 0.04
