package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/inamate/sketchboard/internal/config"
	"github.com/inamate/sketchboard/internal/desktop"
	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/state"
	"github.com/inamate/sketchboard/internal/store"
)

func main() {
	a := app.NewWithID("io.sketchboard.desktop")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	dir := filepath.Join(a.Storage().RootURI().Path(), "boards")
	backend, err := store.NewFile(dir)
	if err != nil {
		slog.Error("open store", "error", err, "dir", dir)
		os.Exit(1)
	}

	ctx := context.Background()
	st := state.New(store.NewShapeStore(backend, cfg.StorageKey))
	if err := st.Load(ctx); err != nil {
		slog.Warn("load shapes", "error", err)
	}

	board, err := desktop.NewBoard(ctx, st)
	if err != nil {
		slog.Error("create board", "error", err)
		os.Exit(1)
	}

	tools := widget.NewRadioGroup(
		[]string{string(shape.ToolSelection), string(shape.ToolLine), string(shape.ToolRectangle)},
		func(name string) {
			tool, err := shape.ParseTool(name)
			if err != nil {
				return
			}
			board.SetTool(tool)
		},
	)
	tools.Horizontal = true
	tools.Required = true
	tools.SetSelected(string(st.Tool()))

	status := widget.NewLabel("")
	showStatus := func(s state.Snapshot) {
		status.SetText(fmt.Sprintf("%s · %d shapes", s.Action, s.ShapeCount))
	}
	showStatus(st.Snapshot())

	st.Subscribe(func(ev state.Event) {
		switch ev.Field {
		case state.FieldTool:
			tools.SetSelected(string(ev.State.Tool))
		case state.FieldAction, state.FieldShapes:
			showStatus(ev.State)
		}
	})

	w := a.NewWindow("Sketchboard")
	w.SetContent(container.NewBorder(tools, status, nil, nil, board))
	w.Resize(fyne.NewSize(1024, 720))
	w.ShowAndRun()
}
