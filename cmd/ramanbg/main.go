// Command ramanbg removes the fluorescence background from Raman spectra.
// It reads a comma-separated (wavenumber, intensity) file, estimates the
// background with the lowest-point method, and writes the cleaned spectrum
// tab-delimited, optionally copying it to the system clipboard for pasting
// into a spreadsheet.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/spectrakit/ramanbg/logging"
	"github.com/spectrakit/ramanbg/process"
	"github.com/spectrakit/ramanbg/spectrum"
)

func main() {
	var (
		inPath      = flag.String("in", "", "input CSV spectrum (prompted for when omitted)")
		outPath     = flag.String("out", "", "output path (default: input name + _bkgrndsub.csv)")
		width       = flag.Int("width", 30, "background window width in samples (even, >= 2)")
		smooth      = flag.Bool("smooth", true, "apply Savitzky-Golay pre-smoothing")
		clip        = flag.Bool("clip", true, "copy the cleaned spectrum to the clipboard")
		workers     = flag.Int("workers", 0, "parallel workers for the estimator (0 = sequential)")
		interactive = flag.Bool("interactive", false, "prompt to process further files")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := logging.GetGlobalLogger()
	if *verbose {
		logger.SetLevel(logging.DebugLevel)
	}

	cfg := process.DefaultConfig()
	cfg.WindowWidth = *width
	cfg.Smooth = *smooth
	cfg.Workers = *workers

	proc, err := process.NewProcessor(cfg)
	if err != nil {
		logger.Error(err, "invalid configuration")
		os.Exit(1)
	}

	stdin := bufio.NewReader(os.Stdin)

	path := *inPath
	for {
		if path == "" {
			fmt.Print("Spectrum CSV file: ")
			line, err := stdin.ReadString('\n')
			if err != nil {
				fmt.Println()
				return
			}
			path = strings.TrimSpace(line)
			if path == "" {
				logger.Warn("no file given")
				continue
			}
		}

		// A failed file aborts that file only; the session continues.
		if err := processFile(proc, logger, path, *outPath, *clip); err != nil {
			logger.Error(err, "processing failed", logging.Fields{"file": path})
		}

		if !*interactive {
			return
		}
		fmt.Print("Process another file? (y/n): ")
		line, err := stdin.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(line)) != "y" {
			fmt.Println("Session ended.")
			return
		}
		path = ""
	}
}

// processFile runs one spectrum through the pipeline and writes the results.
func processFile(proc *process.Processor, logger logging.Logger, inPath, outPath string, toClipboard bool) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	raw, err := spectrum.ReadCSV(f)
	if err != nil {
		return err
	}

	clean, err := proc.Clean(raw)
	if err != nil {
		return err
	}

	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
		outPath = filepath.Join(filepath.Dir(inPath), base+"_bkgrndsub.csv")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := spectrum.WriteDelimited(out, clean, '\t'); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	logger.Info("saved cleaned spectrum", logging.Fields{
		"file":    outPath,
		"samples": clean.Len(),
	})

	if toClipboard {
		if err := clipboard.WriteAll(spectrum.Format(clean, '\t')); err != nil {
			// Not fatal: the file on disk already has the result.
			logger.Warn("could not copy to clipboard", logging.Fields{"error": err.Error()})
		} else {
			logger.Info("cleaned spectrum copied to clipboard (tab-delimited)")
		}
	}

	return nil
}
