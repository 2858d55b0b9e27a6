package shape

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/typeid"
)

type lineJSON struct {
	ID          string           `json:"id"`
	Type        Kind             `json:"type"`
	CoordsStart *geometry.Coords `json:"coordsStart"`
	CoordsEnd   *geometry.Coords `json:"coordsEnd"`
	Nodes       []Node           `json:"nodes"`
}

type rectangleJSON struct {
	ID     string           `json:"id"`
	Type   Kind             `json:"type"`
	Coords *geometry.Coords `json:"coords"`
	Width  *float64         `json:"width"`
	Height *float64         `json:"height"`
	Nodes  []Node           `json:"nodes"`
}

func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineJSON{
		ID:          l.ID,
		Type:        KindLine,
		CoordsStart: &l.Start,
		CoordsEnd:   &l.End,
		Nodes:       l.Nodes[:],
	})
}

func (r Rectangle) MarshalJSON() ([]byte, error) {
	return json.Marshal(rectangleJSON{
		ID:     r.ID,
		Type:   KindRectangle,
		Coords: &r.Coords,
		Width:  &r.Width,
		Height: &r.Height,
		Nodes:  r.Nodes[:],
	})
}

// MarshalShapes encodes shapes as a JSON array of tagged objects.
func MarshalShapes(shapes []Shape) ([]byte, error) {
	if shapes == nil {
		shapes = []Shape{}
	}
	return json.Marshal(shapes)
}

// UnmarshalShapes decodes a JSON array written by MarshalShapes. Empty input
// and null decode to an empty list.
func UnmarshalShapes(data []byte) ([]Shape, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []Shape{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode shape list: %w", err)
	}

	shapes := make([]Shape, 0, len(raw))
	for i, item := range raw {
		sh, err := UnmarshalShape(item)
		if err != nil {
			return nil, fmt.Errorf("decode shape %d: %w", i, err)
		}
		shapes = append(shapes, sh)
	}
	return shapes, nil
}

// UnmarshalShape decodes one tagged shape. Stored nodes are kept only when
// they match the geometry; otherwise they are regenerated. A missing id is
// replaced with a fresh one.
func UnmarshalShape(data []byte) (Shape, error) {
	var probe struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case KindLine:
		var w lineJSON
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		if w.CoordsStart == nil || w.CoordsEnd == nil {
			return nil, fmt.Errorf("%w: line without endpoints", ErrMalformedShape)
		}
		l := Line{ID: idOrNew(w.ID), Start: *w.CoordsStart, End: *w.CoordsEnd}
		want := lineNodes(l.Start, l.End)
		if !nodesMatch(w.Nodes, want[:]) {
			l.Nodes = want
		} else {
			copy(l.Nodes[:], w.Nodes)
		}
		return l, nil

	case KindRectangle:
		var w rectangleJSON
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		if w.Coords == nil || w.Width == nil || w.Height == nil {
			return nil, fmt.Errorf("%w: rectangle without coords or extent", ErrMalformedShape)
		}
		r := Rectangle{ID: idOrNew(w.ID), Coords: *w.Coords, Width: *w.Width, Height: *w.Height}
		want := rectangleNodes(r.Coords, r.Width, r.Height)
		if !nodesMatch(w.Nodes, want[:]) {
			r.Nodes = want
		} else {
			copy(r.Nodes[:], w.Nodes)
		}
		return r, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, probe.Type)
}

func idOrNew(id string) string {
	if id == "" {
		return typeid.NewShapeID()
	}
	return id
}

// nodesMatch reports whether stored nodes have ids and sit where the
// geometry puts them.
func nodesMatch(stored, want []Node) bool {
	if len(stored) != len(want) {
		return false
	}
	for i := range stored {
		if stored[i].ID == "" || stored[i].X != want[i].X || stored[i].Y != want[i].Y {
			return false
		}
	}
	return true
}
