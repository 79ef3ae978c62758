package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"joysprite/hal"
	"joysprite/internal/display"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	fatalBackground = color.RGBA{R: 0x80, A: 0xff}
	fatalForeground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Fatal reports err on the log and the panel and halts.
func Fatal(h hal.HAL, err error) {
	report(h, err)
	select {}
}

// report logs err and paints it on the panel, best effort: the panel may be
// the thing that failed.
func report(h hal.HAL, err error) {
	if h == nil || err == nil {
		return
	}
	logf(h.Logger(), "joysprite: fatal: %v", err)

	panel := h.Display()
	if panel == nil {
		return
	}
	w, ht := panel.Size()
	d := display.New(panel, w, ht)
	if d.SetOrientation(Orientation) != nil {
		return
	}
	if d.Clear(fatalBackground) != nil {
		return
	}
	drawLines(d, []string{"joysprite: fatal", err.Error()})
}

func drawLines(d *display.Driver, lines []string) {
	font := &proggy.TinySZ8pt7b
	_, outbox := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outbox)
	fontHeight := int16(font.GetYAdvance())
	if fontWidth <= 0 || fontHeight <= 0 {
		return
	}

	maxW, maxH := d.Size()
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := fontHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > maxH {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, y, chunk, fatalForeground)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
