package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-mdfilter"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfilter <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown to HTML, LaTeX, RST or AsciiDoc")
	fmt.Fprintln(w, "  doctor     Check pandoc and the in-process renderers")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdfilter help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfilter convert [flags] [file|dir...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files. Reads stdin and writes stdout when no input is given.")
	fmt.Fprintln(w, "Files are written next to their source with the format's extension unless -o is set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format:")
	fmt.Fprintf(w, "  -t, --to <format>         One of: %s (default: html)\n", strings.Join(mdfilter.TargetNames(), ", "))
	fmt.Fprintln(w, "      --args <words>        Extra pandoc arguments, shell-quoted (e.g. \"--wrap=none --toc\")")
	fmt.Fprintln(w, "                            Replaces pandoc.extraArgs from config and the format default")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, directory, or \"-\" for stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --timeout <d>         Timeout for the whole run (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converters:")
	fmt.Fprintln(w, "      --pandoc <path>       pandoc executable (default: pandoc on PATH)")
	fmt.Fprintln(w, "      --from <format>       pandoc reader (default: markdown+lists_without_preceding_blankline)")
	fmt.Fprintln(w, "      --renderer <name>     In-process HTML renderer: goldmark, blackfriday")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pandoc commands and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDFILTER_CONFIG, MDFILTER_PANDOC, MDFILTER_RENDERER, MDFILTER_TIMEOUT, MDFILTER_WORKERS")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfilter doctor [--json] [--pandoc <path>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report the pandoc installation, its supported version range,")
	fmt.Fprintln(w, "and the in-process HTML renderers compiled into this binary.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdfilter version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdfilter help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
