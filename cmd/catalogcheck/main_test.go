package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boycott-check/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateEmbedded(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "entries:    7")
	assert.Contains(t, out, "all categories have alternatives")
}

func TestValidateReportsUnmappedCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - name: Acme\n    brand: Acme\n    category: Toys\n"), 0o600))

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `category "Toys" has no alternatives`)
}

func TestValidateRejectsBrokenCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o600))

	_, err := run(t, "validate", path)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	out, err := run(t, "lookup", "starbucks")
	require.NoError(t, err)

	var resp models.CheckResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.IsBoycott)
	assert.Equal(t, "Coffee", resp.Product.Category)
	assert.Len(t, resp.Alternatives, 3)
}

func TestLookupEmptyQuery(t *testing.T) {
	_, err := run(t, "lookup", "  ")
	assert.Error(t, err)
}
