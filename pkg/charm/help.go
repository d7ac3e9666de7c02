package charm

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// displayHelp prints usage for the deepest node resolved in path: its
// usage line, short and long descriptions, its flags (skipping any named
// in HiddenFlags unless showHidden, and blanking the default shown for any
// named in RedactedFlags), and its visible subcommands, if any.
func displayHelp(p path, showHidden bool) {
	spec := p[len(p)-1].spec
	fs := p[len(p)-1].fs

	fmt.Fprintf(os.Stderr, "Usage: %s\n\n", spec.Usage)
	if spec.Short != "" {
		fmt.Fprintln(os.Stderr, spec.Short)
	}
	if long := strings.TrimSpace(spec.Long); long != "" {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, long)
	}

	hidden := splitCSV(spec.HiddenFlags)
	redacted := splitCSV(spec.RedactedFlags)
	var flags []*flag.Flag
	fs.VisitAll(func(f *flag.Flag) {
		if !showHidden && hidden[f.Name] {
			return
		}
		flags = append(flags, f)
	})
	if len(flags) > 0 {
		fmt.Fprintln(os.Stderr, "\nFlags:")
		for _, f := range flags {
			def := f.DefValue
			if redacted[f.Name] {
				def = "REDACTED"
			}
			fmt.Fprintf(os.Stderr, "  -%-12s %s (default %q)\n", f.Name, f.Usage, def)
		}
	}

	if len(spec.children) > 0 {
		fmt.Fprintln(os.Stderr, "\nCommands:")
		for _, child := range spec.children {
			if child.Hidden && !showHidden {
				continue
			}
			fmt.Fprintf(os.Stderr, "  %-16s %s\n", child.Name, child.Short)
		}
	}
}

func splitCSV(s string) map[string]bool {
	out := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			out[name] = true
		}
	}
	return out
}
