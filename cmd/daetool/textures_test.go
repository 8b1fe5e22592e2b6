package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/daeloader/internal/assets"
	"github.com/Faultbox/daeloader/pkg/collada"
)

func brickPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	return buf.Bytes()
}

func TestCheckTextures(t *testing.T) {
	model, err := collada.LoadFile(sceneFile, collada.Options{})
	require.NoError(t, err)

	good := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(good, "brick.png"), brickPNG(t), 0o644))

	// A valid header followed by cut-off pixel data.
	full := brickPNG(t)
	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, "brick.png"), full[:len(full)-20], 0o644))

	tests := []struct {
		name   string
		dirs   []string
		decode bool
		want   textureSummary
		output string
	}{
		{"not found", nil, false, textureSummary{Missing: 1}, "MISSING"},
		{"search dir", []string{good}, false, textureSummary{OK: 1}, "4x2"},
		{"search dir decoded", []string{good}, true, textureSummary{OK: 1}, "png"},
		{"truncated header only", []string{broken}, false, textureSummary{OK: 1}, "4x2"},
		{"truncated decoded", []string{broken}, true, textureSummary{Failed: 1}, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := assets.NewManager(filepath.Dir(sceneFile))
			for _, dir := range tt.dirs {
				manager.AddSearchDir(dir)
			}

			var buf bytes.Buffer
			got := checkTextures(&buf, model, manager, tt.decode)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), tt.output)
		})
	}
}

func TestSearchDirsFlag(t *testing.T) {
	var dirs searchDirs
	require.NoError(t, dirs.Set("a"))
	require.NoError(t, dirs.Set("b"))
	assert.Equal(t, searchDirs{"a", "b"}, dirs)
	assert.Equal(t, "a,b", dirs.String())
}
