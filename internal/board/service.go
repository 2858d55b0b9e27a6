package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/store"
	"github.com/inamate/sketchboard/internal/typeid"
)

var (
	ErrNotFound = errors.New("board not found")
	ErrBusy     = errors.New("board is open in a session")
)

// Activity reports which boards have an open session.
type Activity interface {
	Active(boardID string) bool
}

type Service struct {
	backend  store.Backend
	keyBase  string
	activity Activity
}

// NewService stores boards in backend under keys derived from keyBase.
// activity may be nil.
func NewService(backend store.Backend, keyBase string, activity Activity) *Service {
	return &Service{backend: backend, keyBase: keyBase, activity: activity}
}

type Board struct {
	ID         string `json:"id"`
	ShapeCount int    `json:"shapeCount"`
	Active     bool   `json:"active"`
}

func (s *Service) shapes(boardID string) *store.ShapeStore {
	return store.NewShapeStore(s.backend, store.Key(s.keyBase, boardID))
}

func (s *Service) active(boardID string) bool {
	return s.activity != nil && s.activity.Active(boardID)
}

// Create allocates a board id and seeds it with an empty shape list.
func (s *Service) Create(ctx context.Context) (*Board, error) {
	id := typeid.NewBoardID()
	if err := s.shapes(id).Save(ctx, nil); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return &Board{ID: id}, nil
}

func (s *Service) Get(ctx context.Context, boardID string) (*Board, error) {
	list, err := s.Shapes(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return &Board{ID: boardID, ShapeCount: len(list), Active: s.active(boardID)}, nil
}

// Shapes returns the committed shapes of a board. Boards that were never
// written read as empty.
func (s *Service) Shapes(ctx context.Context, boardID string) ([]shape.Shape, error) {
	if err := typeid.Validate(boardID, typeid.PrefixBoard); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	list, err := s.shapes(boardID).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load board %s: %w", boardID, err)
	}
	return list, nil
}

// Clear drops every committed shape. A board with an open session is left alone.
func (s *Service) Clear(ctx context.Context, boardID string) error {
	if err := typeid.Validate(boardID, typeid.PrefixBoard); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if s.active(boardID) {
		return ErrBusy
	}
	if err := s.shapes(boardID).Save(ctx, nil); err != nil {
		return fmt.Errorf("clear board %s: %w", boardID, err)
	}
	return nil
}
