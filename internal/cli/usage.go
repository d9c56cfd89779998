package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/mfridman/shiftcipher/pkg/textutil"
)

const helpWidth = 80

// DefaultUsage renders the command's help text: the short description, the usage line and an
// aligned list of flags with their defaults.
func DefaultUsage(c *Command) string {
	if c == nil {
		return ""
	}

	var b strings.Builder
	if c.ShortHelp != "" {
		for _, line := range textutil.Wrap(c.ShortHelp, helpWidth) {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Usage:\n  ")
	if c.Usage != "" {
		b.WriteString(c.Usage)
	} else {
		b.WriteString(c.Name)
		if c.Flags != nil {
			b.WriteString(" [flags]")
		}
	}
	b.WriteString("\n")

	var rows [][2]string
	if c.Flags != nil {
		c.Flags.VisitAll(func(f *flag.Flag) {
			description := f.Usage
			if f.DefValue != "" && f.DefValue != "false" {
				description += fmt.Sprintf(" (default: %s)", f.DefValue)
			}
			rows = append(rows, [2]string{"-" + f.Name, description})
		})
	}
	if len(rows) > 0 {
		b.WriteString("\nFlags:\n")
		b.WriteString(textutil.Columns(rows, helpWidth))
	}

	return strings.TrimRight(b.String(), "\n")
}
