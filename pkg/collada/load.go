package collada

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/daeloader/pkg/xmltree"
)

// Errors from the document boundary. Nothing inside a parsed document
// produces an error; see Model.Diagnostics instead.
var (
	ErrReadDocument = errors.New("reading COLLADA document")
	ErrParseXML     = errors.New("parsing COLLADA XML")
)

// Options configures a load.
type Options struct {
	// Logger receives one Warn entry per diagnostic. Nil disables logging.
	Logger *zap.Logger
}

// loader holds the state of one load call.
type loader struct {
	libs      *libraries
	diag      *diagnostics
	materials map[string]*Material
	model     *Model
}

// FromTree builds a Model from a parsed document tree. The tree is only
// borrowed for the duration of the call.
func FromTree(root *xmltree.Node, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	model := &Model{UpAxis: UpNotFound}
	l := &loader{
		diag:      &diagnostics{log: log},
		materials: make(map[string]*Material),
		model:     model,
	}

	if root == nil || root.Name != "COLLADA" {
		name := ""
		if root != nil {
			name = root.Name
		}
		l.diag.missing("COLLADA", "root element is %q, not COLLADA", name)
		model.Diagnostics = l.diag.list
		return model
	}

	l.libs = buildLibraries(root)
	l.parseScene(root.First("scene"))
	model.UpAxis = decodeUpAxis(root)
	model.Diagnostics = l.diag.list

	log.Debug("loaded COLLADA model",
		zap.Int("nodes", len(model.Nodes)),
		zap.Int("materials", len(model.Materials)),
		zap.Int("triangles", model.TriangleCount()),
		zap.Stringer("up_axis", model.UpAxis),
		zap.Int("diagnostics", len(model.Diagnostics)),
	)
	return model
}

// decodeUpAxis reads asset/up_axis.
func decodeUpAxis(root *xmltree.Node) UpAxis {
	upAxis := root.First("asset").First("up_axis")
	if upAxis == nil {
		return UpNotFound
	}
	switch upAxis.TrimmedText() {
	case "X_UP":
		return XUp
	case "Y_UP":
		return YUp
	case "Z_UP":
		return ZUp
	default:
		return InvalidUp
	}
}

// Decode parses a COLLADA document from r.
func Decode(r io.Reader, opts Options) (*Model, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseXML, err)
	}
	return FromTree(root, opts), nil
}

// Parse parses a COLLADA document held in memory.
func Parse(data []byte, opts Options) (*Model, error) {
	return Decode(bytes.NewReader(data), opts)
}

// LoadFile parses a COLLADA document from disk.
func LoadFile(path string, opts Options) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}
	return Parse(data, opts)
}
