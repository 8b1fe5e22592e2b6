package collada

import (
	"fmt"

	"go.uber.org/zap"
)

// DiagnosticKind classifies a problem found while resolving a document.
type DiagnosticKind int

const (
	// StructuralMissing: an expected element or attribute is absent at a
	// resolution hop. The dependent attribute keeps its default.
	StructuralMissing DiagnosticKind = iota
	// SemanticMismatch: a primitive element cannot be represented as
	// triangles. The element is dropped.
	SemanticMismatch
)

// String returns a human-readable kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case StructuralMissing:
		return "StructuralMissing"
	case SemanticMismatch:
		return "SemanticMismatch"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Diagnostic describes one degraded resolution step.
type Diagnostic struct {
	Kind    DiagnosticKind
	Element string // element or attribute that could not be resolved
	Message string
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Element, d.Message)
}

// diagnostics collects problems and mirrors them to the logger.
type diagnostics struct {
	log  *zap.Logger
	list []Diagnostic
}

func (d *diagnostics) missing(element, format string, args ...any) {
	d.add(StructuralMissing, element, fmt.Sprintf(format, args...))
}

func (d *diagnostics) mismatch(element, format string, args ...any) {
	d.add(SemanticMismatch, element, fmt.Sprintf(format, args...))
}

func (d *diagnostics) add(kind DiagnosticKind, element, msg string) {
	d.list = append(d.list, Diagnostic{Kind: kind, Element: element, Message: msg})
	d.log.Warn(msg,
		zap.Stringer("kind", kind),
		zap.String("element", element),
	)
}
