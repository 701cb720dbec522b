package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown on server start.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal-to-blue gradient, one color per line
	s1 := termenv.String(` _                     _                `).Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(`| |__   ___  _ __ ___ | |_ _ __ ___  ___ `).Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(`| '_ \ / _ \| '_ ' _ \| __| '__/ _ \/ _ \`).Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(`| |_) | (_) | | | | | | |_| | |  __/  __/`).Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(`|_.__/ \___/|_| |_| |_|\__|_|  \___|\___|`).Foreground(p.Color("#818cf8"))
	tag := termenv.String(fmt.Sprintf("  assembly tree builder %s", version)).Foreground(p.Color("#94a3b8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(tag)
	fmt.Println()
}
