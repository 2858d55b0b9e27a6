// Package state holds the interaction state of one open document.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/shape"
)

// Action is the phase of the current gesture.
type Action string

const (
	ActionIdle Action = "IDLE"
	ActionDraw Action = "DRAW"
	ActionEdit Action = "EDIT"
)

// Field names a piece of state in change events.
type Field string

const (
	FieldTool          Field = "tool"
	FieldAction        Field = "action"
	FieldOffset        Field = "offset"
	FieldStartPosition Field = "startPosition"
	FieldCurrentShape  Field = "currentShape"
	FieldShapes        Field = "shapes"
)

// Persister loads and saves the committed shape list.
type Persister interface {
	Load(ctx context.Context) ([]shape.Shape, error)
	Save(ctx context.Context, shapes []shape.Shape) error
}

// Snapshot is a copy of the state at one instant.
type Snapshot struct {
	Tool          shape.Tool
	Action        Action
	Offset        geometry.Coords
	StartPosition geometry.Coords
	CurrentShape  shape.Shape
	ShapeCount    int
}

// Event reports a write to Field, with the state as it stood right after.
type Event struct {
	Field Field
	State Snapshot
}

type subscriber struct {
	id int
	fn func(Event)
}

// State is the interaction state of a single document. Subscribers run
// synchronously, in subscription order, after each write and outside the lock,
// so they may read the state back.
type State struct {
	mu sync.Mutex

	persister Persister

	shapes        []shape.Shape
	current       shape.Shape
	tool          shape.Tool
	action        Action
	offset        geometry.Coords
	startPosition geometry.Coords

	subs   []subscriber
	nextID int
}

// New returns an idle state with the selection tool armed. A nil persister
// keeps shapes in memory only.
func New(p Persister) *State {
	return &State{
		persister: p,
		tool:      shape.ToolSelection,
		action:    ActionIdle,
	}
}

// Load replaces the committed shapes with the persisted list.
func (s *State) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	shapes, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load shapes: %w", err)
	}

	s.mu.Lock()
	s.shapes = append([]shape.Shape(nil), shapes...)
	s.mu.Unlock()

	slog.Debug("shapes loaded", "count", len(shapes))
	s.notify(FieldShapes)
	return nil
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it.
func (s *State) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *State) notify(field Field) {
	s.mu.Lock()
	snap := s.snapshotLocked()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	ev := Event{Field: field, State: snap}
	for _, sub := range subs {
		sub.fn(ev)
	}
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Tool:          s.tool,
		Action:        s.action,
		Offset:        s.offset,
		StartPosition: s.startPosition,
		CurrentShape:  s.current,
		ShapeCount:    len(s.shapes),
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Shapes returns the committed shapes in z-order, bottom first.
func (s *State) Shapes() []shape.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shape.Shape(nil), s.shapes...)
}

// Shape looks up a committed shape by id.
func (s *State) Shape(id string) (shape.Shape, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.shapes[i], true
	}
	return nil, false
}

func (s *State) indexLocked(id string) int {
	for i, sh := range s.shapes {
		if sh.ShapeID() == id {
			return i
		}
	}
	return -1
}

// AddShape appends sh on top of the committed list and persists the list.
// On a persistence failure the in-memory list keeps the shape and the error
// is returned.
func (s *State) AddShape(ctx context.Context, sh shape.Shape) error {
	if sh == nil {
		return nil
	}
	s.mu.Lock()
	s.shapes = append(s.shapes, sh)
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify(FieldShapes)
	return err
}

// RemoveShape drops the committed shape with id and persists the list.
// Removing an unknown id is a no-op.
func (s *State) RemoveShape(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.shapes = append(s.shapes[:i:i], s.shapes[i+1:]...)
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify(FieldShapes)
	return err
}

func (s *State) persist(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	shapes := s.Shapes()
	if err := s.persister.Save(ctx, shapes); err != nil {
		slog.Warn("save shapes", "error", err, "count", len(shapes))
		return fmt.Errorf("save shapes: %w", err)
	}
	return nil
}

// CurrentShape returns a copy of the selected shape.
func (s *State) CurrentShape() (shape.Shape, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// SetCurrentShape selects sh. nil clears the selection.
func (s *State) SetCurrentShape(sh shape.Shape) {
	s.mu.Lock()
	if s.current == nil && sh == nil {
		s.mu.Unlock()
		return
	}
	s.current = sh
	s.mu.Unlock()
	s.notify(FieldCurrentShape)
}

// ClearCurrentShape drops the selection.
func (s *State) ClearCurrentShape() { s.SetCurrentShape(nil) }

func (s *State) Tool() shape.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// SetTool arms t. Changing tools drops the selection.
func (s *State) SetTool(t shape.Tool) {
	s.mu.Lock()
	if s.tool == t {
		s.mu.Unlock()
		return
	}
	s.tool = t
	hadSelection := s.current != nil
	s.current = nil
	s.mu.Unlock()

	s.notify(FieldTool)
	if hadSelection {
		s.notify(FieldCurrentShape)
	}
}

func (s *State) Action() Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action
}

func (s *State) SetAction(a Action) {
	s.mu.Lock()
	if s.action == a {
		s.mu.Unlock()
		return
	}
	s.action = a
	s.mu.Unlock()
	s.notify(FieldAction)
}

func (s *State) Offset() geometry.Coords {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

func (s *State) SetOffset(o geometry.Coords) {
	s.mu.Lock()
	if s.offset == o {
		s.mu.Unlock()
		return
	}
	s.offset = o
	s.mu.Unlock()
	s.notify(FieldOffset)
}

// Pan shifts the offset against a wheel delta.
func (s *State) Pan(dx, dy float64) {
	o := s.Offset()
	s.SetOffset(geometry.Coords{X: o.X - dx, Y: o.Y - dy})
}

func (s *State) StartPosition() geometry.Coords {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startPosition
}

func (s *State) SetStartPosition(p geometry.Coords) {
	s.mu.Lock()
	s.startPosition = p
	s.mu.Unlock()
	s.notify(FieldStartPosition)
}
