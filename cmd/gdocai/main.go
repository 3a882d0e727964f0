// gdocai is a command-line tool for digitizing land-register sheets with Google Document AI.
//
// The scanned PDF is sent to a Document AI processor. The recognized layout of every page is
// stored as the OCR layout of a new .gbx file, and the title block (Amtsgericht, Grundbuch von,
// Blatt) is taken from the processor's custom extractor entities, its form fields or the page text.
//
// Configuration:
//
// The tool requires a YAML configuration file with Google Document AI settings:
//
//	project_id: "your-gcp-project-id"
//	location: "eu"
//	processor_id: "your-processor-id"
//	dpi: 300                 # optional, resolution of the page images
//	seite:                   # optional, physical page size in mm
//	  breite_mm: 210
//	  hoehe_mm: 297
//	titelblatt:              # optional, entity types of the title block
//	  amtsgericht: "amtsgericht"
//	  grundbuch_von: "grundbuch_von"
//	  blatt: "blatt"
//
// Usage:
//
//	gdocai -config config.yml -pdf input.pdf -output sheet.gbx [options]
//
// Required flags:
//
//	-config string  Path to the YAML configuration file
//	-pdf string     Path to the input PDF file (required if -pdfs is not defined)
//	-pdfs string    Comma separated list of single-page PDF files to process as one sheet (required if -pdf is not defined)
//
// Output options (at least one required):
//
//	-output string           Path to save the .gbx file
//	-text string             Path to save OCR text output
//	-hocr string             Path to save hOCR output
//	-form-fields string      Path to save form fields JSON
//	-extractor-fields string Path to save custom extractor fields JSON
//	-images string           Directory to save page images
//
// Debug options:
//
//	-debug-api string   Path to save raw API response as JSON
//	-debug              Enable debug logging
//
// Processing options:
//
//	-parallel int       Pages sent to Document AI at the same time with -pdfs (default 4)
//
// Authentication:
//
// The tool uses the GOOGLE_APPLICATION_CREDENTIALS environment variable
// for authentication with Google Cloud.
//
// Example:
//
//	export GOOGLE_APPLICATION_CREDENTIALS=/path/to/credentials.json
//	gdocai -config config.yml -pdf blatt_254.pdf -output blatt_254.gbx -hocr blatt_254.hocr
//	gdocai -config config.yml -pdfs page1.pdf,page2.pdf,page3.pdf -output blatt_254.gbx -images ./pages
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/gbx/pkg/gbx"
	"github.com/gardar/gbx/pkg/gdocai"
	"github.com/gardar/gbx/pkg/hocr"
)

type yamlConfig struct {
	ProjectID   string  `yaml:"project_id"`
	Location    string  `yaml:"location"`
	ProcessorID string  `yaml:"processor_id"`
	DPI         float64 `yaml:"dpi"`
	Seite       struct {
		BreiteMm float64 `yaml:"breite_mm"`
		HoeheMm  float64 `yaml:"hoehe_mm"`
	} `yaml:"seite"`
	Titelblatt struct {
		Amtsgericht  string `yaml:"amtsgericht"`
		GrundbuchVon string `yaml:"grundbuch_von"`
		Blatt        string `yaml:"blatt"`
	} `yaml:"titelblatt"`
}

// loadConfig reads a YAML file and converts it to our Google Document AI config
func loadConfig(path string) (*gdocai.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, err
	}
	return &gdocai.Config{
		ProjectID:   yc.ProjectID,
		Location:    yc.Location,
		ProcessorID: yc.ProcessorID,
		DPI:         yc.DPI,
		Seite: gdocai.Seitenformat{
			BreiteMm: yc.Seite.BreiteMm,
			HoeheMm:  yc.Seite.HoeheMm,
		},
		Titelblatt: gdocai.TitelblattFelder{
			Amtsgericht:  yc.Titelblatt.Amtsgericht,
			GrundbuchVon: yc.Titelblatt.GrundbuchVon,
			Blatt:        yc.Titelblatt.Blatt,
		},
	}, nil
}

func usageError(msg string) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	fmt.Fprintln(os.Stderr, "Usage:")
	flag.PrintDefaults()
	os.Exit(1)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}

func main() {
	// Required flags.
	configPath := flag.String("config", "", "Path to the config YAML file (required)")
	pdfPath := flag.String("pdf", "", "Path to the input PDF file (required if -pdfs not specified)")
	pdfPaths := flag.String("pdfs", "", "Comma-separated list of PDF files to process as individual pages (required if -pdf not specified)")

	// Output flags
	outputPath := flag.String("output", "", "Path to save the .gbx file")
	textPath := flag.String("text", "", "Path to save OCR text output")
	hocrPath := flag.String("hocr", "", "Path to save hOCR output")
	formFieldsPath := flag.String("form-fields", "", "Path to save form fields JSON")
	extractorFieldsPath := flag.String("extractor-fields", "", "Path to save custom extractor fields JSON")
	imagesDir := flag.String("images", "", "Directory to save images returned by Document AI API for each processed page")
	debugAPIPath := flag.String("debug-api", "", "Path to save API response as JSON for debugging purposes")
	debug := flag.Bool("debug", false, "Enable debug logging")
	parallel := flag.Int("parallel", gdocai.DefaultParallel, "Number of pages sent to Document AI at the same time with -pdfs")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Create a map of provided flags to validate
	providedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		providedFlags[f.Name] = true
	})

	if *configPath == "" {
		usageError("-config flag is required")
	}
	if (*pdfPath == "" && *pdfPaths == "") || (*pdfPath != "" && *pdfPaths != "") {
		usageError("Either -pdf or -pdfs flag must be provided (but not both)")
	}

	outputs := map[string]string{
		"output":           *outputPath,
		"text":             *textPath,
		"hocr":             *hocrPath,
		"form-fields":      *formFieldsPath,
		"extractor-fields": *extractorFieldsPath,
		"images":           *imagesDir,
		"debug-api":        *debugAPIPath,
	}
	hasOutputFlag := false
	for name, value := range outputs {
		if !providedFlags[name] {
			continue
		}
		if value == "" {
			usageError(fmt.Sprintf("-%s flag requires a value", name))
		}
		hasOutputFlag = true
	}
	if !hasOutputFlag {
		usageError("At least one output flag must be provided (-output, -text, -hocr, -form-fields, -extractor-fields, -images or -debug-api)")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	ctx := context.Background()
	scanner := gdocai.NewScanner(cfg)
	scanner.Parallel = *parallel
	var result *gdocai.Result

	if *pdfPath != "" {
		logger.Info("processing PDF", slog.String("path", *pdfPath))

		pdfBytes, err := os.ReadFile(*pdfPath)
		if err != nil {
			fatal(logger, "failed to read PDF file", err)
		}
		result, err = scanner.Scan(ctx, pdfBytes)
		if err != nil {
			fatal(logger, "error processing document", err)
		}
	} else {
		var pdfPageBytes [][]byte
		for _, path := range strings.Split(*pdfPaths, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			logger.Debug("reading page", slog.Int("seite", len(pdfPageBytes)+1), slog.String("path", path))
			pageBytes, err := os.ReadFile(path)
			if err != nil {
				fatal(logger, "failed to read PDF file", fmt.Errorf("%s: %w", path, err))
			}
			pdfPageBytes = append(pdfPageBytes, pageBytes)
		}
		if len(pdfPageBytes) == 0 {
			usageError("No valid PDF files found in the provided list")
		}

		logger.Info("processing PDF files as separate pages", slog.Int("seiten", len(pdfPageBytes)))
		result, err = scanner.ScanPages(ctx, pdfPageBytes)
		if err != nil {
			fatal(logger, "error processing documents", err)
		}
	}

	if len(result.Missing) > 0 {
		logger.Warn("title block incomplete, fill in manually", slog.Any("fehlend", result.Missing))
	}

	if *outputPath != "" {
		if err := gbx.WriteFile(*outputPath, result.File); err != nil {
			fatal(logger, "failed to write gbx file", err)
		}
		logger.Info("gbx file saved",
			slog.String("path", *outputPath),
			slog.String("titelblatt", result.File.Analysiert.Titelblatt.String()),
			slog.Int("seiten", len(result.File.Seiten())))
	}

	if *textPath != "" {
		if err := os.WriteFile(*textPath, []byte(result.Raw.GetText()), 0o644); err != nil {
			fatal(logger, "failed to write text output", err)
		}
		logger.Info("document text saved", slog.String("path", *textPath))
	}

	if *hocrPath != "" {
		doc := hocr.HOCR{
			Title:    result.File.Analysiert.Titelblatt.String(),
			Language: "de",
			Metadata: map[string]string{"ocr-system": "Google Document AI"},
		}
		for _, n := range result.File.Seiten() {
			seite, ok := result.File.Seite(n)
			if !ok {
				continue
			}
			doc.Pages = append(doc.Pages, hocr.Page{
				ID:         fmt.Sprintf("page_%d", n),
				PageNumber: n,
				Parsed:     seite.Parsed,
			})
		}
		html, err := hocr.Generate(&doc)
		if err != nil {
			fatal(logger, "failed to generate hOCR", err)
		}
		if err := os.WriteFile(*hocrPath, []byte(html), 0o644); err != nil {
			fatal(logger, "failed to write hOCR output", err)
		}
		logger.Info("hOCR output saved", slog.String("path", *hocrPath))
	}

	if *debugAPIPath != "" {
		apiJSON, err := gdocai.ToJSON(result.Raw)
		if err != nil {
			fatal(logger, "failed to convert API response to JSON", err)
		}
		if err := os.WriteFile(*debugAPIPath, []byte(apiJSON), 0o644); err != nil {
			fatal(logger, "failed to write API response JSON", err)
		}
		logger.Info("API response JSON saved", slog.String("path", *debugAPIPath))
	}

	if *formFieldsPath != "" {
		formFieldsJSON, err := gdocai.ToJSON(gdocai.ExtractFormFields(result.Raw))
		if err != nil {
			fatal(logger, "failed to convert form fields to JSON", err)
		}
		if err := os.WriteFile(*formFieldsPath, []byte(formFieldsJSON), 0o644); err != nil {
			fatal(logger, "failed to write form fields JSON", err)
		}
		logger.Info("form fields JSON saved", slog.String("path", *formFieldsPath))
	}

	if *extractorFieldsPath != "" {
		extractorFieldsJSON, err := gdocai.ToJSON(gdocai.ExtractCustomExtractorFields(result.Raw))
		if err != nil {
			fatal(logger, "failed to convert custom extractor fields to JSON", err)
		}
		if err := os.WriteFile(*extractorFieldsPath, []byte(extractorFieldsJSON), 0o644); err != nil {
			fatal(logger, "failed to write custom extractor fields JSON", err)
		}
		logger.Info("custom extractor fields JSON saved", slog.String("path", *extractorFieldsPath))
	}

	if *imagesDir != "" {
		if err := os.MkdirAll(*imagesDir, 0o755); err != nil {
			fatal(logger, "failed to create images directory", err)
		}
		if len(result.Images) == 0 {
			logger.Warn("no page images available to extract")
		}
		for n, img := range result.Images {
			imagePath := filepath.Join(*imagesDir, fmt.Sprintf("%d%s", n, imageExtension(img.MimeType)))
			if err := os.WriteFile(imagePath, img.Content, 0o644); err != nil {
				logger.Warn("failed to write page image", slog.Int("seite", n), slog.Any("error", err))
				continue
			}
			logger.Debug("page image saved", slog.Int("seite", n), slog.String("path", imagePath))
		}
	}
}

// imageExtension maps the MIME type of a page image to the extension
// pdfocr expects.
func imageExtension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	default:
		return ".png"
	}
}
