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
	{`     _       _           _         _             `, "#34d399"},
	{`    / \   __| |_ __ ___ (_)___ ___(_) ___  _ __  `, "#10b981"},
	{`   / _ \ / _' | '_ ' _ \| / __/ __| |/ _ \| '_ \ `, "#059669"},
	{`  / ___ \ (_| | | | | | | \__ \__ \ | (_) | | | |`, "#047857"},
	{` /_/   \_\__,_|_| |_| |_|_|___/___/_|\___/|_| |_|`, "#065f46"},
}

// PrintBanner writes the startup banner, colored for the output's terminal profile.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w, out.String("  score upload templates "+version).Faint())
	fmt.Fprintln(w)
}
