package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the hxnotify banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).ColorProfile()
	// Same indigo to rose ramp as the modal palette
	lines := []struct{ text, color string }{
		{" _              _   _  __       ", "#818cf8"},
		{"| |____ __ ___ | |_(_)/ _|_   _ ", "#a78bfa"},
		{"| '_ \\ \\ / '_ \\ / _ \\ __| | |_| | | |", "#c084fc"},
		{"| | | >  <| | | | (_) | |_| |  _| |_| |", "#e879f9"},
		{"|_| |_/_/\\_\\_| |_|\\___/ \\__|_|_|  \\__, |", "#f472b6"},
		{"                                 |___/ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String(version).Faint())
}
