package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	to       string
	args     string
	output   string
	workers  int
	timeout  string
	renderer string
	pandoc   string
	from     string

	// argsSet records whether --args was given, even as "".
	argsSet bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json   bool
	pandoc string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pandoc commands and timing")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.StringVarP(&f.to, "to", "t", "html", "output format: html, html-native, html-pandoc, latex, rst, asciidoc")
	fs.StringVar(&f.args, "args", "", "extra pandoc arguments as shell words")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "timeout for the whole run (e.g., 30s, 2m)")
	fs.StringVar(&f.renderer, "renderer", "", "in-process HTML renderer: goldmark, blackfriday")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc executable")
	fs.StringVar(&f.from, "from", "", "pandoc reader format (e.g., gfm)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.argsSet = fs.Changed("args")

	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, usage io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &doctorFlags{}

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc executable")

	fs.Usage = func() { printDoctorUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
