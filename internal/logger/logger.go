package logger

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	cyan   = "\033[36m"
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
)

var colored = isatty.IsTerminal(os.Stdout.Fd())

func paint(color, s string) string {
	if !colored {
		return s
	}
	return color + s + reset
}

func line(color, tag, msg string) {
	fmt.Printf("%s %s\n", paint(color, fmt.Sprintf("[%s]", tag)), msg)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	name := "eve-seeker"
	if version != "" {
		name += " " + version
	}
	fmt.Println(paint(bold+cyan, "═══ "+name+" ═══"))
}

// Section prints a section divider.
func Section(title string) {
	fmt.Println(paint(bold, "── "+title+" ──"))
}

// Info logs an informational message under a component tag.
func Info(tag, msg string) {
	line(cyan, tag, msg)
}

// Success logs a success message under a component tag.
func Success(tag, msg string) {
	line(green, tag, msg)
}

// Warn logs a warning under a component tag.
func Warn(tag, msg string) {
	line(yellow, tag, msg)
}

// Error logs an error under a component tag.
func Error(tag, msg string) {
	line(red, tag, msg)
}

// Stats prints a key/value pair, indented under the current section.
func Stats(key string, value interface{}) {
	fmt.Printf("  %s %v\n", paint(dim, key+":"), value)
}
