// Package extract turns a remote archive of website-analytics HTML
// snapshots into the tabular rows the transform stage ingests: download,
// unzip, pull the embedded JSON payload out of each page and flatten it
// into CSV columns.
package extract

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"sitepulse-backend/lib/telemetry"
)

var client = resty.New()

func init() {
	telemetry.InstrumentResty(client, "services/extract")
}

// Fetch streams the file at url into dest.
func Fetch(ctx context.Context, url, dest string) error {
	res, err := client.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(url)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("download %s: %s", url, res.Status())
	}
	return nil
}
