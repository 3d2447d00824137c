package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	labelColor   = color.New(color.FgCyan)
	mutedColor   = color.New(color.Faint)
)

func printSuccess(w io.Writer, format string, args ...any) {
	successColor.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}

func printWarn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}

func printInfo(w io.Writer, format string, args ...any) {
	mutedColor.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	labelColor.Fprintf(w, "%-10s", label+":")
	fmt.Fprintf(w, " %s\n", value)
}

// PrintError writes err the way every darkchat command reports failures
func PrintError(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}
