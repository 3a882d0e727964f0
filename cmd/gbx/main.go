// gbx is a command-line tool for working with .gbx land-register files.
//
// Usage:
//
//	gbx <command> [options] file.gbx
//
// Commands:
//
//	fmt          Rewrite a file in canonical form (-w to write in place, -compact for one line)
//	check        Validate files and print a redaction summary per section
//	import-hocr  Store the pages of an hOCR file as the OCR layout of a .gbx file
//	export-hocr  Write the OCR layout of a .gbx file as hOCR
//	text         Print the recognized text of a page, a column override or a rectangle in mm
//
// Examples:
//
//	gbx check blatt_254.gbx
//	gbx import-hocr -hocr scan.hocr -dpi 300 blatt_254.gbx
//	gbx text -seite 2 -spalte lfd_nr -clean blatt_254.gbx
//	gbx text -seite 2 -rect 20,40,60,280 blatt_254.gbx
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gardar/gbx/pkg/gbx"
	"github.com/gardar/gbx/pkg/geom"
	"github.com/gardar/gbx/pkg/hocr"
)

const mmPerInch = 25.4

var errUsage = errors.New("usage error")

type command struct {
	summary string
	run     func(args []string, stdout io.Writer, logger *slog.Logger) error
}

var commands = map[string]command{
	"fmt":         {"rewrite a file in canonical form", runFmt},
	"check":       {"validate files and print a redaction summary", runCheck},
	"import-hocr": {"store an hOCR file as OCR layout", runImportHocr},
	"export-hocr": {"write the OCR layout as hOCR", runExportHocr},
	"text":        {"print recognized text", runText},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if !errors.Is(err, errUsage) {
			logger.Error("command failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage(os.Stderr)
		return errUsage
	}
	return cmd.run(args[1:], stdout, logger)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gbx <command> [options] file.gbx")
	fmt.Fprintln(w, "Commands:")
	for _, name := range []string{"fmt", "check", "import-hocr", "export-hocr", "text"} {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
}

// parseFlags parses a subcommand's flags and returns its file arguments.
func parseFlags(fs *flag.FlagSet, args []string, minFiles int) ([]string, error) {
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() < minFiles {
		fmt.Fprintf(os.Stderr, "%s: missing file argument\n", fs.Name())
		fs.PrintDefaults()
		return nil, errUsage
	}
	return fs.Args(), nil
}

func runFmt(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "Write result to the file instead of stdout")
	compact := fs.Bool("compact", false, "Write the minimal encoding without indentation")
	files, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}

	for _, path := range files {
		file, err := gbx.ReadFile(path)
		if err != nil {
			return err
		}
		var data []byte
		if *compact {
			data, err = gbx.Encode(file)
		} else {
			data, err = gbx.EncodeIndent(file)
		}
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if !*write {
			if _, err := stdout.Write(data); err != nil {
				return err
			}
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("formatted", slog.String("path", path))
	}
	return nil
}

func runCheck(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	files, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}

	var failed int
	for _, path := range files {
		file, err := gbx.ReadFile(path)
		if err != nil {
			logger.Error("invalid gbx file", slog.Any("error", err))
			failed++
			continue
		}

		fmt.Fprintf(stdout, "%s: %s, %d Seiten\n", path, file.Analysiert.Titelblatt, len(file.Seiten()))
		stats := file.Analysiert.Geroetet()
		for _, abschnitt := range gbx.Abschnitte {
			s := stats[abschnitt]
			if s.Eintraege == 0 {
				continue
			}
			fmt.Fprintf(stdout, "  %-5s %3d Einträge, %3d gerötet\n", abschnitt, s.Eintraege, s.Geroetet)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(files))
	}
	return nil
}

func runImportHocr(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("import-hocr", flag.ContinueOnError)
	hocrPath := fs.String("hocr", "", "Path to the hOCR file (required)")
	breiteMm := fs.Float64("breite-mm", 0, "Page width in mm (derived from -dpi if not set)")
	hoeheMm := fs.Float64("hoehe-mm", 0, "Page height in mm (derived from -dpi if not set)")
	dpi := fs.Float64("dpi", 300, "Resolution of the page images")
	files, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	if *hocrPath == "" || *dpi <= 0 {
		fmt.Fprintln(os.Stderr, "import-hocr: -hocr is required and -dpi must be positive")
		return errUsage
	}

	data, err := os.ReadFile(*hocrPath)
	if err != nil {
		return fmt.Errorf("failed to read hOCR file: %w", err)
	}
	doc, err := hocr.Parse(data)
	if err != nil {
		return err
	}

	path := files[0]
	file, err := gbx.ReadFile(path)
	if err != nil {
		return err
	}

	updated := *file
	for _, page := range doc.Pages {
		seite := gbx.HocrSeite{
			BreiteMm: *breiteMm,
			HoeheMm:  *hoeheMm,
			Parsed:   page.Parsed,
		}
		if seite.BreiteMm <= 0 {
			seite.BreiteMm = page.Parsed.Bounds.Width() / *dpi * mmPerInch
		}
		if seite.HoeheMm <= 0 {
			seite.HoeheMm = page.Parsed.Bounds.Height() / *dpi * mmPerInch
		}
		if old, ok := updated.Seite(page.PageNumber); ok {
			seite.RoteLinien = old.RoteLinien
		}
		updated = updated.SetSeite(page.PageNumber, seite)
		logger.Debug("page imported", slog.Int("seite", page.PageNumber), slog.Int("woerter", len(page.Parsed.Words())))
	}
	updated.Digitalisiert = true

	if err := gbx.WriteFile(path, &updated); err != nil {
		return err
	}
	logger.Info("hOCR imported", slog.String("path", path), slog.Int("seiten", len(doc.Pages)))
	return nil
}

func runExportHocr(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("export-hocr", flag.ContinueOnError)
	output := fs.String("o", "", "Write to this file instead of stdout")
	files, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}

	file, err := gbx.ReadFile(files[0])
	if err != nil {
		return err
	}
	doc := hocr.HOCR{
		Title:    file.Analysiert.Titelblatt.String(),
		Language: "de",
	}
	for _, n := range file.Seiten() {
		seite, ok := file.Seite(n)
		if !ok {
			continue
		}
		doc.Pages = append(doc.Pages, hocr.Page{
			ID:         fmt.Sprintf("page_%d", n),
			PageNumber: n,
			Parsed:     seite.Parsed,
		})
	}
	if len(doc.Pages) == 0 {
		return fmt.Errorf("%s has no OCR layout", files[0])
	}

	html, err := hocr.Generate(&doc)
	if err != nil {
		return err
	}
	if *output == "" {
		_, err := io.WriteString(stdout, html)
		return err
	}
	if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write hOCR output: %w", err)
	}
	logger.Info("hOCR exported", slog.String("path", *output), slog.Int("seiten", len(doc.Pages)))
	return nil
}

func runText(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("text", flag.ContinueOnError)
	seiteNr := fs.Int("seite", 1, "Page number")
	spalte := fs.String("spalte", "", "Id of a column override of the page")
	rect := fs.String("rect", "", "Rectangle in mm as minx,miny,maxx,maxy")
	clean := fs.Bool("clean", false, "Join words hyphenated across lines")
	files, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	if *spalte != "" && *rect != "" {
		fmt.Fprintln(os.Stderr, "text: -spalte and -rect are mutually exclusive")
		return errUsage
	}

	file, err := gbx.ReadFile(files[0])
	if err != nil {
		return err
	}
	seite, ok := file.Seite(*seiteNr)
	if !ok {
		return fmt.Errorf("page %d has no OCR layout", *seiteNr)
	}

	var text gbx.StringOrLines
	switch {
	case *spalte != "":
		r, ok := file.AnpassungenSeite[gbx.SeitenID(*seiteNr)].Spalten[*spalte]
		if !ok {
			return fmt.Errorf("page %d has no column %q", *seiteNr, *spalte)
		}
		text = seite.TextIn(r)
	case *rect != "":
		r, err := parseRect(*rect)
		if err != nil {
			return err
		}
		text = seite.TextIn(r)
	default:
		text = gbx.FromString(seite.Parsed.Text())
	}

	out := text.Text()
	if *clean {
		out = text.TextClean()
	}
	logger.Debug("text extracted", slog.Int("seite", *seiteNr), slog.Int("zeilen", len(text.Lines())))
	_, err = fmt.Fprintln(stdout, out)
	return err
}

// parseRect parses "minx,miny,maxx,maxy".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("invalid rectangle %q: want minx,miny,maxx,maxy", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
		}
		v[i] = f
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}
