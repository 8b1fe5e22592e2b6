package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// ErrUnknownFormat is returned for image data no decoder recognizes.
var ErrUnknownFormat = errors.New("unknown image format")

// ImageInfo describes a texture file without decoding its pixels.
type ImageInfo struct {
	Path   string
	Format string // "png", "jpeg", "bmp", "tiff", "gif" or "tga"
	Width  int
	Height int
	Size   int // file size in bytes
}

// Inspect locates ref and reads its image header.
func (m *Manager) Inspect(ref string) (ImageInfo, error) {
	path, err := m.Locate(ref)
	if err != nil {
		return ImageInfo{}, err
	}
	data, err := m.Load(ref)
	if err != nil {
		return ImageInfo{}, err
	}

	info := ImageInfo{Path: path, Size: len(data)}
	cfg, format, err := DecodeConfig(data, path)
	if err != nil {
		return info, fmt.Errorf("inspecting %s: %w", path, err)
	}
	info.Format = format
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info, nil
}

// DecodeConfig reads image dimensions. TGA has no magic number, so it is
// picked by the .tga extension of name.
func DecodeConfig(data []byte, name string) (image.Config, string, error) {
	if isTGA(name) {
		h, err := parseTGAHeader(data)
		if err != nil {
			return image.Config{}, "", err
		}
		return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, "tga", nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return cfg, "", ErrUnknownFormat
	}
	return cfg, format, err
}

// Decode decodes a texture, picking TGA by the extension of name.
func Decode(data []byte, name string) (image.Image, string, error) {
	if isTGA(name) {
		img, err := DecodeTGA(data)
		return img, "tga", err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrUnknownFormat
	}
	return img, format, err
}

func isTGA(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".tga")
}

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

type tgaHeader struct {
	imageType     byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
	dataOffset    int
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < 18 {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}
	h := tgaHeader{
		imageType:     data[2],
		width:         int(data[12]) | int(data[13])<<8,
		height:        int(data[14]) | int(data[15])<<8,
		bytesPerPixel: int(data[16]) / 8,
		topToBottom:   data[17]&0x20 != 0,
		dataOffset:    18 + int(data[0]),
	}
	switch {
	case data[1] != 0:
		return h, fmt.Errorf("color-mapped TGA not supported")
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	case h.bytesPerPixel != 3 && h.bytesPerPixel != 4:
		return h, fmt.Errorf("unsupported TGA bit depth %d", data[16])
	case h.dataOffset > len(data):
		return h, fmt.Errorf("TGA data truncated")
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA image.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	pixels := data[h.dataOffset:]
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	total := h.width * h.height
	bpp := h.bytesPerPixel

	put := func(idx int, px []byte) {
		x, y := idx%h.width, idx/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		a := uint8(255)
		if bpp == 4 {
			a = px[3]
		}
		img.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
	}

	if h.imageType == TGATypeUncompressed {
		if len(pixels) < total*bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < total; i++ {
			put(i, pixels[i*bpp:])
		}
		return img, nil
	}

	idx, pos := 0, 0
	for idx < total && pos < len(pixels) {
		packet := pixels[pos]
		pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if pos+bpp > len(pixels) {
				break
			}
			for i := 0; i < count && idx < total; i++ {
				put(idx, pixels[pos:])
				idx++
			}
			pos += bpp
			continue
		}
		for i := 0; i < count && idx < total && pos+bpp <= len(pixels); i++ {
			put(idx, pixels[pos:])
			pos += bpp
			idx++
		}
	}
	return img, nil
}
