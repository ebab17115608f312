package image

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-currency-api/internal/model"
)

func TestFormatGDP(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "0.00M"},
		{1_500_000, "1.50M"},
		{999_999_999, "1000.00M"},
		{1_000_000_000, "1.00B"},
		{2_340_000_000, "2.34B"},
		{1_000_000_000_000, "1.00T"},
		{4_567_000_000_000, "4.57T"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatGDP(tc.in), "FormatGDP(%v)", tc.in)
	}
}

func TestRenderWritesSummaryFile(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	stamp := "2026-08-31T12:00:00Z"
	top := []model.TopCountry{
		{Name: "Germany", EstimatedGDP: 2.1e11},
		{Name: "France", EstimatedGDP: 1.2e11},
	}

	path, err := g.Render(195, top, &stamp)
	require.NoError(t, err)
	assert.Equal(t, g.Path(), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err, "artifact must be a valid PNG")
	bounds := img.Bounds()
	assert.Equal(t, 800, bounds.Dx())
	assert.Equal(t, 600, bounds.Dy())
}

func TestRenderNilTimestampMeansNever(t *testing.T) {
	g := NewGenerator(t.TempDir())

	// "Never" renders without error even with no data at all.
	path, err := g.Render(0, nil, nil)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderOverwritesPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	_, err := g.Render(1, []model.TopCountry{{Name: "A", EstimatedGDP: 1e9}}, nil)
	require.NoError(t, err)
	first, err := os.ReadFile(g.Path())
	require.NoError(t, err)

	stamp := "2026-08-31T12:00:00Z"
	_, err = g.Render(2, []model.TopCountry{{Name: "B", EstimatedGDP: 2e9}}, &stamp)
	require.NoError(t, err)
	second, err := os.ReadFile(g.Path())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(g.Path()), entries[0].Name())
}

func TestGeneratorCreatesCacheDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	g := NewGenerator(dir)

	_, err := g.Render(0, nil, nil)
	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
