package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdfilter"
	"github.com/alnah/go-mdfilter/internal/hints"
	"github.com/alnah/go-mdfilter/internal/pandoc"
	"github.com/alnah/go-mdfilter/internal/render"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc    pandocInfo `json:"pandoc"`
	Renderers []string   `json:"renderers"`
	Env       envInfo    `json:"environment"`
	Warnings  []string   `json:"warnings,omitempty"`
	Errors    []string   `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found       bool   `json:"found"`
	Binary      string `json:"binary"`
	Path        string `json:"path,omitempty"`
	Version     string `json:"version,omitempty"`
	Supported   bool   `json:"supported"`
	Minimum     string `json:"minimum"`
	Maximum     string `json:"maximum"`
	HeadingFlag string `json:"asciidoc_heading_flag,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// Status tags, coloured when the output is a terminal.
var (
	tagOK    = color.New(color.FgGreen).Sprint("[OK]")
	tagWarn  = color.New(color.FgYellow).Sprint("[WARN]")
	tagError = color.New(color.FgRed, color.Bold).Sprint("[ERROR]")
)

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = ready (including warnings), 4 = pandoc unusable.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	binary := flags.pandoc
	if binary == "" {
		binary = env.Getenv("MDFILTER_PANDOC")
	}

	result := runDoctor(ctx, binary, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitPandoc
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, binary string, env *Environment) *doctorResult {
	if binary == "" {
		binary = pandoc.DefaultBinary
	}

	result := &doctorResult{
		Status: statusReady,
		Pandoc: pandocInfo{
			Binary:  binary,
			Minimum: pandoc.MinimumVersion,
			Maximum: pandoc.MaximumVersion,
		},
		Renderers: render.Available(),
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkPandoc(ctx, result, env)
	checkRenderers(result)
	checkEnvironment(result, env)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkPandoc locates pandoc and checks its version against the supported window.
func checkPandoc(ctx context.Context, result *doctorResult, env *Environment) {
	info := &result.Pandoc

	path, err := env.LookPath(info.Binary)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("pandoc not found (%s)%s", info.Binary, hints.ForPandocNotFound()))
		return
	}
	info.Found = true
	info.Path = path

	opts := []mdfilter.Option{mdfilter.WithPandocPath(path)}
	if env.Runner != nil {
		opts = append(opts, mdfilter.WithRunner(env.Runner))
	}
	v, err := mdfilter.NewConverter(opts...).PandocVersion(ctx)
	switch {
	case err != nil:
		result.Errors = append(result.Errors, fmt.Sprintf("could not run %s --version: %v", path, err))
		return
	case v == "":
		result.Warnings = append(result.Warnings,
			"could not determine pandoc version; AsciiDoc output will use --atx-headers")
		info.HeadingFlag = "--atx-headers"
		return
	}

	info.Version = v
	info.Supported = pandoc.InSupportedRange(v)
	if pandoc.AtLeast(v, pandoc.HeadingFlagVersion) {
		info.HeadingFlag = "--markdown-headings=atx"
	} else {
		info.HeadingFlag = "--atx-headers"
	}

	if !info.Supported {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("pandoc %s is outside the supported range%s",
				v, hints.ForPandocVersion(pandoc.MinimumVersion, pandoc.MaximumVersion)))
	}
}

// checkRenderers warns when the default in-process renderer is not compiled in.
func checkRenderers(result *doctorResult) {
	for _, name := range result.Renderers {
		if name == render.Default {
			return
		}
	}
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("default HTML renderer %s not compiled in%s",
			render.Default, hints.ForRendererUnavailable(result.Renderers)))
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container = hints.IsInContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdfilter doctor")
	fmt.Fprintln(w)

	// Pandoc section
	fmt.Fprintln(w, "Pandoc")
	if r.Pandoc.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", tagOK, r.Pandoc.Path)
		switch {
		case r.Pandoc.Version == "":
			fmt.Fprintf(w, "  %s Version: unknown\n", tagWarn)
		case r.Pandoc.Supported:
			fmt.Fprintf(w, "  %s Version: %s (supported: >= %s, < %s)\n",
				tagOK, r.Pandoc.Version, r.Pandoc.Minimum, r.Pandoc.Maximum)
		default:
			fmt.Fprintf(w, "  %s Version: %s (supported: >= %s, < %s)\n",
				tagWarn, r.Pandoc.Version, r.Pandoc.Minimum, r.Pandoc.Maximum)
		}
		if r.Pandoc.HeadingFlag != "" {
			fmt.Fprintf(w, "  %s AsciiDoc heading flag: %s\n", tagOK, r.Pandoc.HeadingFlag)
		}
	} else {
		fmt.Fprintf(w, "  %s Not found (%s)\n", tagError, r.Pandoc.Binary)
	}
	fmt.Fprintln(w)

	// Renderer section
	fmt.Fprintln(w, "HTML renderers")
	if len(r.Renderers) == 0 {
		fmt.Fprintf(w, "  %s none compiled in\n", tagWarn)
	}
	for _, name := range r.Renderers {
		suffix := ""
		if name == render.Default {
			suffix = " (default)"
		}
		fmt.Fprintf(w, "  %s %s%s\n", tagOK, name, suffix)
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", tagOK, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected\n", tagOK)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", tagOK)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", tagWarn, warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", tagError, e)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
