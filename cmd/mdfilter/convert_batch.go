package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-mdfilter"
	"github.com/alnah/go-mdfilter/internal/config"
	"github.com/alnah/go-mdfilter/internal/fileutil"
)

// maxAutoWorkers caps the worker count chosen automatically.
const maxAutoWorkers = 8

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, t mdfilter.Target, source string, extraArgs ...string) (string, error)
}

// Compile-time interface implementation check.
var _ Converter = (*mdfilter.Converter)(nil)

// batchJob groups parameters shared across the files of one run.
type batchJob struct {
	target    mdfilter.Target
	extraArgs []string
	files     []FileToConvert
	stdout    io.Writer // used when OutputPath is "-"
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Bytes      int
	Err        error
	Duration   time.Duration
}

// resolveWorkers determines the number of parallel conversions.
// Priority: explicit value > GOMAXPROCS-based calculation, never more than
// the number of files.
func resolveWorkers(configured, files int) int {
	n := configured
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers
		n = runtime.GOMAXPROCS(0)
		if n > maxAutoWorkers {
			n = maxAutoWorkers
		}
	}
	if n > files {
		n = files
	}
	if n < 1 {
		n = 1
	}
	return n
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// convertBatch processes files concurrently with a fixed set of workers.
// Results keep the order of job.files.
func convertBatch(ctx context.Context, conv Converter, workers int, job *batchJob) []ConversionResult {
	if len(job.files) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]ConversionResult, len(job.files))
	var wg sync.WaitGroup
	var stdoutMu sync.Mutex
	jobs := make(chan int, len(job.files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{
						InputPath: job.files[idx].InputPath,
						Err:       err,
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, job, job.files[idx], &stdoutMu)
			}
		}()
	}

	for i := range job.files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, job *batchJob, f FileToConvert, stdoutMu *sync.Mutex) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	out, err := conv.Convert(ctx, job.target, string(content), job.extraArgs...)
	if err != nil {
		return finish(err)
	}
	result.Bytes = len(out)

	if f.OutputPath == stdioPath {
		stdoutMu.Lock()
		_, err = io.WriteString(job.stdout, out)
		stdoutMu.Unlock()
		if err != nil {
			return finish(fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err))
		}
		return finish(nil)
	}

	return finish(writeOutput(f.OutputPath, out))
}

// writeOutput writes a converted document, creating parent directories.
func writeOutput(path, content string) error {
	if err := fileutil.WriteFile(path, content); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each conversion and returns the number of failures
// and the first error. Failures always go to stderr; successes are silent
// with quiet and for stdout output.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) (int, error) {
	summary := countResults(results)
	var firstErr error

	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		if quiet || r.OutputPath == stdioPath {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stderr, "%s -> %s (%s, %v)\n",
				r.InputPath, r.OutputPath, humanize.Bytes(uint64(r.Bytes)), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stderr, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed, firstErr
}
