package shape

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMarshalShapesTaggedFormat(t *testing.T) {
	line := NewLine(pt(10, 10), pt(110, 60))
	rect := NewRectangle(pt(50, 50), pt(150, 120))

	data, err := MarshalShapes([]Shape{line, rect})
	if err != nil {
		t.Fatalf("MarshalShapes() error = %v", err)
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not a JSON array of objects: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("len = %d, want 2", len(raw))
	}
	for _, key := range []string{"id", "type", "coordsStart", "coordsEnd", "nodes"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("line JSON missing %q: %s", key, data)
		}
	}
	for _, key := range []string{"id", "type", "coords", "width", "height", "nodes"} {
		if _, ok := raw[1][key]; !ok {
			t.Errorf("rectangle JSON missing %q: %s", key, data)
		}
	}
	if string(raw[0]["type"]) != `"LINE"` || string(raw[1]["type"]) != `"RECTANGLE"` {
		t.Errorf("type tags = %s %s", raw[0]["type"], raw[1]["type"])
	}
}

func TestUnmarshalShapesRestoresValues(t *testing.T) {
	line := NewLine(pt(10, 10), pt(110, 60))
	rect := NewRectangle(pt(150, 120), pt(50, 50))

	data, err := MarshalShapes([]Shape{line, rect})
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalShapes(data)
	if err != nil {
		t.Fatalf("UnmarshalShapes() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != Shape(line) {
		t.Errorf("line = %+v, want %+v", got[0], line)
	}
	if got[1] != Shape(rect) {
		t.Errorf("rectangle = %+v, want %+v", got[1], rect)
	}
}

func TestUnmarshalShapesEmptyInput(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		got, err := UnmarshalShapes([]byte(in))
		if err != nil || len(got) != 0 {
			t.Errorf("UnmarshalShapes(%q) = %v, %v, want empty", in, got, err)
		}
	}
	if data, _ := MarshalShapes(nil); string(data) != "[]" {
		t.Errorf("MarshalShapes(nil) = %s, want []", data)
	}
}

func TestUnmarshalShapeUnknownKind(t *testing.T) {
	_, err := UnmarshalShapes([]byte(`[{"id":"x","type":"ELLIPSE"}]`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestUnmarshalShapeMissingGeometry(t *testing.T) {
	for _, in := range []string{
		`{"type":"LINE","coordsStart":{"x":1,"y":1}}`,
		`{"type":"RECTANGLE","coords":{"x":1,"y":1},"width":3}`,
	} {
		if _, err := UnmarshalShape([]byte(in)); !errors.Is(err, ErrMalformedShape) {
			t.Errorf("UnmarshalShape(%s) err = %v, want ErrMalformedShape", in, err)
		}
	}
}

func TestUnmarshalShapeRepairsIDsAndNodes(t *testing.T) {
	in := `{"type":"RECTANGLE","coords":{"x":50,"y":50},"width":100,"height":70,
		"nodes":[{"id":"node_a","x":0,"y":0}]}`
	sh, err := UnmarshalShape([]byte(in))
	if err != nil {
		t.Fatalf("UnmarshalShape() error = %v", err)
	}
	r := sh.(Rectangle)
	if !strings.HasPrefix(r.ID, "shape_") {
		t.Errorf("ID = %q, want generated shape_ id", r.ID)
	}
	want := NewRectangle(pt(50, 50), pt(150, 120))
	if nodePoints(r) != nodePoints(want) {
		t.Errorf("nodes = %v, want %v", nodePoints(r), nodePoints(want))
	}
	for i, n := range r.Nodes {
		if n.ID == "" {
			t.Errorf("node %d has no id", i)
		}
	}
}

func TestUnmarshalShapeKeepsConsistentNodes(t *testing.T) {
	in := `{"id":"shape_1","type":"LINE","coordsStart":{"x":1,"y":2},"coordsEnd":{"x":3,"y":4},
		"nodes":[{"id":"node_a","x":1,"y":2},{"id":"node_b","x":3,"y":4}]}`
	sh, err := UnmarshalShape([]byte(in))
	if err != nil {
		t.Fatalf("UnmarshalShape() error = %v", err)
	}
	l := sh.(Line)
	if l.ID != "shape_1" || l.Nodes[0].ID != "node_a" || l.Nodes[1].ID != "node_b" {
		t.Errorf("line = %+v, want stored ids kept", l)
	}
}

func TestUnmarshalShapesRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalShapes([]byte(`{"not":"a list"}`)); err == nil {
		t.Error("UnmarshalShapes(object) err = nil")
	}
}
