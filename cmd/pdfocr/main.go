// pdfocr is a command-line tool for rendering digitized land-register sheets to searchable PDFs.
//
// Every page of the .gbx file that carries an OCR layout becomes a PDF page with an invisible
// text layer at the position of each recognized word. When a directory of page images is given,
// the images are drawn underneath; the images must be named after their page number
// (1.png, 2.jpg, 3.tif, ...), as written by gdocai -images. TIFF scans are converted to PNG.
//
// Usage:
//
//	pdfocr -gbx sheet.gbx -output sheet.pdf [options]
//
// Required flags:
//
//	-gbx string       Path to the .gbx file
//	-output string    Output PDF path
//
// Processing options:
//
//	-image-dir string Directory containing the page images
//	-start-page int   Start rendering from this page (default 1)
//	-debug            Enable debug mode (shows OCR bounding boxes and visible text)
//	-overlay          Draw the column and row overrides of each page
//	-overwrite        Overwrite output file if it exists
//
// Examples:
//
//	pdfocr -gbx blatt_254.gbx -output blatt_254.pdf
//	pdfocr -gbx blatt_254.gbx -image-dir ./pages -overlay -output blatt_254_review.pdf
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gardar/gbx/pkg/gbx"
	"github.com/gardar/gbx/pkg/pdfocr"
)

func main() {
	gbxPath := flag.String("gbx", "", "Path to the .gbx file")
	imageDirPath := flag.String("image-dir", "", "Directory containing page images named by page number")
	pdfOcrPath := flag.String("output", "", "Output PDF path")
	startPage := flag.Int("start-page", 1, "Start rendering from this page number (1-based index)")
	debug := flag.Bool("debug", false, "Enable debug mode")
	overlay := flag.Bool("overlay", false, "Draw column and row overrides")
	overwriteOutput := flag.Bool("overwrite", false, "Overwrite the output PDF if it already exists")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *gbxPath == "" || *pdfOcrPath == "" {
		fmt.Fprintln(os.Stderr, "Error: Must provide -gbx and -output")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*pdfOcrPath); err == nil && !*overwriteOutput {
		logger.Error("output file already exists, use -overwrite to overwrite", slog.String("path", *pdfOcrPath))
		os.Exit(1)
	}

	file, err := gbx.ReadFile(*gbxPath)
	if err != nil {
		logger.Error("failed to read gbx file", slog.Any("error", err))
		os.Exit(1)
	}

	var images map[int][]byte
	if *imageDirPath != "" {
		images, err = readImages(*imageDirPath, logger)
		if err != nil {
			logger.Error("failed to read page images", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("page images found", slog.Int("count", len(images)), slog.String("dir", *imageDirPath))
	}

	config := pdfocr.DefaultConfig()
	config.Debug = *debug
	config.Overlay = *overlay
	config.StartPage = *startPage
	config.Logger = logger

	finalPDF, err := pdfocr.Render(file, images, config)
	if err != nil {
		logger.Error("error rendering PDF", slog.Any("error", err))
		os.Exit(1)
	}

	if err := os.WriteFile(*pdfOcrPath, finalPDF, 0o644); err != nil {
		logger.Error("failed to write output PDF", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("searchable PDF created", slog.String("path", *pdfOcrPath))
}

// readImages loads the page images of dir, keyed by the page number in the
// file name. Files not named after a page number are ignored.
func readImages(dir string, logger *slog.Logger) (map[int][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	images := make(map[int][]byte)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		n, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil || n < 1 {
			logger.Debug("ignoring file", slog.String("name", name))
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		images[n] = data
	}
	return images, nil
}
