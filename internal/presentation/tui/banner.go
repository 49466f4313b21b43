package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _   _       _ _               `, "#6b7280"},
	{`| | | | ___ | | | _____      __`, "#7c6f64"},
	{`| |_| |/ _ \| | |/ _ \ \ /\ / /`, "#8f3f3f"},
	{`|  _  | (_) | | | (_) \ V  V / `, "#a12d2d"},
	{`|_| |_|\___/|_|_|\___/ \_/\_/  `, "#b91c1c"},
}

// PrintBanner writes the title banner, fading from ash to blood when the terminal has colour.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  Eden's Hollow "+version).Faint())
	fmt.Fprintln(w)
}
