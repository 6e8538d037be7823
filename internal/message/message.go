package message

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	quiet     bool
	noColor   bool
	silent    bool
	verbose   bool
	mutex     sync.RWMutex
	outWriter io.Writer = os.Stderr

	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	sectionColor = color.New(color.FgHiMagenta, color.Bold)
)

// SetQuiet enables/disables user messages
func SetQuiet(q bool) {
	mutex.Lock()
	defer mutex.Unlock()
	quiet = q
}

// SetNoColor enables/disables colored output
func SetNoColor(nc bool) {
	mutex.Lock()
	defer mutex.Unlock()
	noColor = nc
	color.NoColor = nc
}

// SetSilent enables/disables all messages
func SetSilent(s bool) {
	mutex.Lock()
	defer mutex.Unlock()
	silent = s
}

// SetVerbose enables progress messages printed with Verbose and Done.
func SetVerbose(v bool) {
	mutex.Lock()
	defer mutex.Unlock()
	verbose = v
}

// SetOutput changes the output writer (useful for testing)
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	outWriter = w
}

// AutoColor turns colour off when stderr is not a terminal.
func AutoColor() {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		SetNoColor(true)
	}
}

func IsVerbose() bool {
	mutex.RLock()
	defer mutex.RUnlock()
	return verbose
}

func printf(c *color.Color, prefix, format string, args ...any) {
	mutex.RLock()
	defer mutex.RUnlock()

	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(outWriter, "%s%s\n", prefix, msg)
	} else {
		c.Fprintf(outWriter, "%s%s\n", prefix, msg)
	}
}

func suppressed(allowQuiet bool) bool {
	mutex.RLock()
	defer mutex.RUnlock()
	return silent || (quiet && !allowQuiet)
}

// Info prints an informational message unless quiet/silent mode is enabled
func Info(format string, args ...any) {
	if suppressed(false) {
		return
	}
	printf(infoColor, "[*] ", format, args...)
}

// Verbose prints a progress message when verbose mode is on.
func Verbose(format string, args ...any) {
	if !IsVerbose() || suppressed(false) {
		return
	}
	printf(infoColor, "", format, args...)
}

// Done prints the green DONE marker that closes a verbose mutation.
func Done() {
	if !IsVerbose() || suppressed(false) {
		return
	}
	printf(successColor, "", "DONE")
}

// Success prints a success message unless quiet/silent mode is enabled
func Success(format string, args ...any) {
	if suppressed(false) {
		return
	}
	printf(successColor, "[+] ", format, args...)
}

// Warning prints a warning message unless silent mode is enabled
func Warning(format string, args ...any) {
	if suppressed(true) {
		return
	}
	printf(warningColor, "[!] ", format, args...)
}

// Error prints an error message unless silent mode is enabled
func Error(format string, args ...any) {
	if suppressed(true) {
		return
	}
	printf(errorColor, "[-] ", format, args...)
}

// Critical prints a critical error message that is never suppressed
func Critical(format string, args ...any) {
	printf(errorColor, "[!!] ", format, args...)
}

// Emphasize returns a string with bold formatting
func Emphasize(s string) string {
	mutex.RLock()
	defer mutex.RUnlock()
	if noColor {
		return s
	}
	return color.New(color.Bold).Sprint(s)
}

// Section prints a section header
func Section(format string, args ...any) {
	if suppressed(false) {
		return
	}

	mutex.RLock()
	defer mutex.RUnlock()

	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(outWriter, "\n-=[%s]=-\n\n", msg)
	} else {
		sectionColor.Fprintf(outWriter, "\n-=[%s]=-\n\n", msg)
	}
}
