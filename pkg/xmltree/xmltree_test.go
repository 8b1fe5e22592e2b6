package xmltree

import (
	"errors"
	"strings"
	"testing"
)

const sample = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <asset><up_axis> Z_UP </up_axis></asset>
  <library_images>
    <image id="img0" name="brick"><init_from>brick.png</init_from></image>
  </library_images>
  <scene/>
</COLLADA>`

func TestParse(t *testing.T) {
	root, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Name != "COLLADA" {
		t.Fatalf("expected root COLLADA, got %s", root.Name)
	}
	if v, ok := root.Attr("version"); !ok || v != "1.4.1" {
		t.Errorf("expected version 1.4.1, got %q (%v)", v, ok)
	}
	if got := root.First("asset").First("up_axis").TrimmedText(); got != "Z_UP" {
		t.Errorf("expected Z_UP, got %q", got)
	}
	image := root.First("library_images").First("image")
	if id, _ := image.Attr("id"); id != "img0" {
		t.Errorf("expected image id img0, got %q", id)
	}
	if got := image.First("init_from").Text; got != "brick.png" {
		t.Errorf("expected brick.png, got %q", got)
	}
	if root.First("scene") == nil {
		t.Error("expected scene element")
	}
}

func TestNilSafeNavigation(t *testing.T) {
	var n *Node
	if n.First("a").First("b") != nil {
		t.Error("expected nil from chained lookup on nil node")
	}
	if _, ok := n.Attr("id"); ok {
		t.Error("expected no attribute on nil node")
	}
	if n.FirstElement() != nil || n.ChildrenNamed("x") != nil || n.TrimmedText() != "" {
		t.Error("expected zero values on nil node")
	}
	n.Walk(func(*Node) { t.Error("walk visited nil node") })
}

func TestWalkPreOrder(t *testing.T) {
	root, err := Parse(strings.NewReader(`<a><b><c/></b><d/></a>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var names []string
	root.Walk(func(n *Node) { names = append(names, n.Name) })
	if got := strings.Join(names, ","); got != "a,b,c,d" {
		t.Errorf("got order %s, want a,b,c,d", got)
	}
	if got := len(root.ChildrenNamed("b")); got != 1 {
		t.Errorf("expected 1 b child, got %d", got)
	}
	if root.FirstElement().Name != "b" {
		t.Errorf("expected first element b, got %s", root.FirstElement().Name)
	}
}

func TestTextSplitByMarkup(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"comment", `<float_array>1 2<!-- x -->3</float_array>`, "1 2 3"},
		{"processing instruction", `<p>4<?pi data?>5</p>`, "4 5"},
		{"child element", `<p>6<b>ignored</b>7</p>`, "6 7"},
		{"leading comment", `<p><!-- x -->8 9</p>`, "8 9"},
		{"plain", `<p>1 2 3</p>`, "1 2 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := root.Text; got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><image><init_from>caf\xe9.png</init_from></image>"
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := root.First("init_from").Text; got != "café.png" {
		t.Errorf("got %q, want café.png", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"whitespace only", "   \n"},
		{"unclosed", "<a><b></a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}
