package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAllIsolatesRowFailures(t *testing.T) {
	ctx, store := setupStore(t)

	first := fullRow()
	second := fullRow()
	second["domain"] = "not a domain"
	third := fullRow()
	third["domain"] = "other-site.net"

	loader := Loader{Store: store}
	result, err := loader.LoadAll(ctx, []Row{first, second, third})
	require.NoError(t, err)
	require.Equal(t, Result{Loaded: 2, Failed: 1}, result)

	rows, err := store.Query(ctx, "SELECT website FROM website_scrapes ORDER BY website;")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "example.com", rows[0][0])
	require.Equal(t, "other-site.net", rows[1][0])
}

func TestLoadAllEmptyBatch(t *testing.T) {
	ctx, store := setupStore(t)

	loader := Loader{Store: store}
	result, err := loader.LoadAll(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, Result{}, result)
}
