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
	{"  ___ _   _ _ __   ___ _ __ __| | ___ _ __  ___  ___ ", "#818cf8"},
	{" / __| | | | '_ \\ / _ \\ '__/ _` |/ _ \\ '_ \\/ __|/ _ \\", "#a78bfa"},
	{" \\__ \\ |_| | |_) |  __/ | | (_| |  __/ | | \\__ \\  __/", "#c084fc"},
	{" |___/\\__,_| .__/ \\___|_|  \\__,_|\\___|_| |_|___/\\___|", "#e879f9"},
	{"           |_|                                        ", "#f472b6"},
}

// PrintBanner writes the superdense ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
