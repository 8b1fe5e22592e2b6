package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/daeloader/internal/assets"
	"github.com/Faultbox/daeloader/pkg/collada"
)

// searchDirs collects repeated -I flags.
type searchDirs []string

func (d *searchDirs) String() string {
	return strings.Join(*d, ",")
}

func (d *searchDirs) Set(dir string) error {
	*d = append(*d, dir)
	return nil
}

// textureSummary counts the outcome of a texture check.
type textureSummary struct {
	OK      int
	Missing int
	Failed  int // located but unreadable as an image
}

// checkTextures writes one line per textured material. With decode set,
// every located file is decoded in full rather than only its header.
func checkTextures(w io.Writer, model *collada.Model, manager *assets.Manager, decode bool) textureSummary {
	var s textureSummary
	for _, m := range model.Materials {
		if !m.HasTexture() {
			continue
		}

		info, err := manager.Inspect(m.Texture)
		if err == nil && decode {
			err = decodeTexture(manager, m.Texture, info.Path)
		}

		switch {
		case errors.Is(err, assets.ErrNotFound):
			s.Missing++
			fmt.Fprintf(w, "%-16s %-32s MISSING\n", m.Name, m.Texture)
		case err != nil:
			s.Failed++
			fmt.Fprintf(w, "%-16s %-32s ERROR %v\n", m.Name, m.Texture, err)
		default:
			s.OK++
			fmt.Fprintf(w, "%-16s %-32s %-5s %5dx%-5d %s\n", m.Name, m.Texture, info.Format, info.Width, info.Height, info.Path)
		}
	}
	return s
}

func decodeTexture(manager *assets.Manager, ref, path string) error {
	data, err := manager.Load(ref)
	if err != nil {
		return err
	}
	if _, _, err := assets.Decode(data, path); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
