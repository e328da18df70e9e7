package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdfilter/internal/fileutil"
)

// ErrInvalidExtension is returned for an explicit input that is not Markdown.
var ErrInvalidExtension = errors.New("file must have a markdown extension (.md, .markdown, .mdown, .mkd)")

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs into the files to convert. Directories are
// walked for .md and .markdown files; explicit files must have one of those
// extensions. ext is the output extension, including the dot.
func discoverFiles(inputs []string, outputDir, ext string) ([]FileToConvert, error) {
	var files []FileToConvert

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateMarkdownExtension(input); err != nil {
				return nil, err
			}
			files = append(files, FileToConvert{
				InputPath:  input,
				OutputPath: resolveOutputPath(input, outputDir, "", ext),
			})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !fileutil.IsMarkdown(path) {
				return nil
			}
			files = append(files, FileToConvert{
				InputPath:  path,
				OutputPath: resolveOutputPath(path, outputDir, input, ext),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) > 1 && outputDir != stdioPath && isOutputFile(outputDir, ext) {
		return nil, fmt.Errorf("%w: got %q for %d files", ErrOutputNotDir, outputDir, len(files))
	}

	return files, nil
}

// resolveOutputPath determines the output path for a markdown file.
//   - no outputDir: next to the source, extension replaced
//   - "-": standard output
//   - outputDir ending in ext: used as the file itself
//   - otherwise: inside outputDir, mirroring the layout under baseInputDir
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	if outputDir == "" {
		return fileutil.ReplaceExtension(inputPath, ext)
	}

	if outputDir == stdioPath {
		return stdioPath
	}

	if isOutputFile(outputDir, ext) {
		return outputDir
	}

	base := filepath.Base(fileutil.ReplaceExtension(inputPath, ext))
	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// isOutputFile reports whether an -o value names a file rather than a directory.
func isOutputFile(output, ext string) bool {
	return strings.EqualFold(filepath.Ext(output), ext)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
