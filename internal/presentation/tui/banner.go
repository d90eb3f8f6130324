package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the REPL banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"            __           _          ", "#818cf8"},
		{"  _ __     / _| __ _ ___(_)_ __ ___ ", "#a78bfa"},
		{" | '_ \\   | |_ / _` / __| | '_ ` _ \\", "#c084fc"},
		{" | | | |  |  _| (_| \\__ \\ | | | | | |", "#e879f9"},
		{" |_| |_|  |_|  \\__,_|___/_|_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
