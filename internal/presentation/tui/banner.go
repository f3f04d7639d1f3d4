package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Sweetwater Arcade banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ___                 _            _           ", "#38bdf8"},
		{" / __|_ __ _____ ___| |___ __ ____ _| |_ ___ _ _ ", "#22d3ee"},
		{" \\__ \\ V  V / -_) -_)  _\\ V  V / _` |  _/ -_) '_|", "#2dd4bf"},
		{" |___/\\_/\\_/\\___\\___|\\__|\\_/\\_/\\__,_|\\__\\___|_|  ", "#34d399"},
		{"                 A R C A D E", "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
