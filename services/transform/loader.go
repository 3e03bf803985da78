package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"sitepulse-backend/lib/tablestore"
)

var tracer = otel.Tracer("services/transform")
var meter = otel.Meter("services/transform")
var rowsLoaded, _ = meter.Int64Counter("rows_loaded")
var rowsFailed, _ = meter.Int64Counter("rows_failed")

// Loader drives snapshot construction and persistence for a batch of
// rows against one injected store.
type Loader struct {
	Store tablestore.Store
}

type Result struct {
	Loaded int
	Failed int
}

// LoadAll processes rows strictly in order. A row failing validation is
// logged with its content and skipped; partial success across the batch
// is expected. Any non-validation error (store unavailable, I/O) aborts
// the batch since it signals a broken environment rather than bad input.
func (l Loader) LoadAll(ctx context.Context, rows []Row) (Result, error) {
	ctx, span := tracer.Start(ctx, "LoadAll")
	defer span.End()
	span.SetAttributes(attribute.Int("rows", len(rows)))

	var result Result
	for _, row := range rows {
		snapshot, err := NewSnapshot(row)
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return result, err
			}
			slog.ErrorContext(ctx, "skipping row that failed validation",
				"row", fmt.Sprint(row),
				"err", err,
			)
			rowsFailed.Add(ctx, 1)
			result.Failed++
			continue
		}

		if err := Persist(ctx, l.Store, snapshot); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}
		rowsLoaded.Add(ctx, 1)
		result.Loaded++
	}

	slog.InfoContext(ctx, "batch loaded", "loaded", result.Loaded, "failed", result.Failed)
	return result, nil
}
