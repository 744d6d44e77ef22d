package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview block for a colour.
// Width specifies how many characters wide the block should be. Uses the
// background colour with spaces for a solid block; callers should gate
// this on TTY detection.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	block := strings.Repeat(" ", width)

	return bgColour + block + ansiReset
}

// FormatColourWithLabel formats a colour with a label, preview block and
// hex code on one line.
func FormatColourWithLabel(c RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-12s %s", ColourPreview(c, width), label, c.Hex())
}
