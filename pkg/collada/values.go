package collada

import (
	"strconv"
	"strings"
)

// parseFloats decodes whitespace-separated floats. Tokens that fail to parse
// decode as zero so one bad value never drops the rest of the list.
func parseFloats(s string) []float32 {
	fields := strings.Fields(s)
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			continue
		}
		out[i] = float32(v)
	}
	return out
}

// parseInts decodes whitespace-separated integers, malformed tokens as zero.
func parseInts(s string) []int {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out[i] = v
	}
	return out
}

// parseCount decodes a single non-negative integer attribute.
func parseCount(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// fragment strips the leading '#' of a same-document URI reference.
// ok is false for references into other documents.
func fragment(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, "#") {
		return ref, false
	}
	return ref[1:], true
}
