package value

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileValue(t *testing.T) {
	dir := t.TempDir()

	page := filepath.Join(dir, "index.html")
	err := os.WriteFile(page, []byte("<html></html>"), 0644)
	require.NoError(t, err)

	var x string

	val := NewFile(&x, page)

	require.Equal(t, page, val.String())
	require.Equal(t, nil, val.Validate())
	require.Equal(t, false, val.IsEmpty())

	val.Set(filepath.Join(dir, "missing.html"))

	require.Equal(t, nil, val.Validate())

	val.Set(dir)

	require.Error(t, val.Validate())

	val.Set("")

	require.Equal(t, nil, val.Validate())
	require.Equal(t, true, val.IsEmpty())
}
