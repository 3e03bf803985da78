package extract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/extract")

type ExportOptions struct {
	URL         string
	ArchivePath string
	UnzipDir    string
	CSVPath     string
}

// ExportURL downloads the snapshot archive, unzips it, parses every
// HTML page inside and writes the flattened rows to CSV. Returns the
// number of rows written.
func ExportURL(ctx context.Context, opts ExportOptions) (int, error) {
	ctx, span := tracer.Start(ctx, "ExportURL")
	defer span.End()
	span.SetAttributes(attribute.String("url", opts.URL))

	fail := func(err error) (int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	if err := Fetch(ctx, opts.URL, opts.ArchivePath); err != nil {
		return fail(err)
	}
	if err := Unzip(opts.ArchivePath, opts.UnzipDir); err != nil {
		return fail(err)
	}

	pages, err := filepath.Glob(filepath.Join(opts.UnzipDir, "*.html"))
	if err != nil {
		return fail(err)
	}

	rows := make([]map[string]string, 0, len(pages))
	for _, page := range pages {
		slog.InfoContext(ctx, "parsing snapshot page", "file", page)
		row, err := parsePage(page)
		if err != nil {
			return fail(err)
		}
		rows = append(rows, row)
	}

	if err := WriteCSV(opts.CSVPath, rows); err != nil {
		return fail(err)
	}
	return len(rows), nil
}

func parsePage(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	payload, err := AppData(f)
	if err != nil {
		return nil, err
	}
	return DataPoints(payload)
}
