// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package term

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/snowfall"
)

func startHost(t *testing.T, ctx context.Context, cfg Config) (*Host, tcell.SimulationScreen, <-chan error) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	cfg.FieldOptions = append(cfg.FieldOptions, snowfall.WithSeed(1))
	if cfg.Interval == 0 {
		cfg.Interval = time.Millisecond
	}
	h, err := NewHost(screen, snowfall.NewRenderer(), cfg)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for h.Field() == nil {
		if time.Now().After(deadline) {
			t.Fatal("host did not create a field")
		}
		time.Sleep(time.Millisecond)
	}
	return h, screen, done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestNewHostErrors(t *testing.T) {
	if _, err := NewHost(nil, snowfall.NewRenderer(), Config{}); !errors.Is(err, snowfall.ErrInvalidConfiguration) {
		t.Errorf("NewHost(nil screen) = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewHost(tcell.NewSimulationScreen("UTF-8"), nil, Config{}); !errors.Is(err, snowfall.ErrInvalidConfiguration) {
		t.Errorf("NewHost(nil renderer) = %v, want ErrInvalidConfiguration", err)
	}
}

func TestHostQuitKey(t *testing.T) {
	var attached *snowfall.Field
	h, screen, done := startHost(t, context.Background(), Config{
		Count:   20,
		OnField: func(f *snowfall.Field) error {
			attached = f
			return nil
		},
	})

	f := h.Field()
	if f.Len() != 20 {
		t.Errorf("Len() = %d, want 20", f.Len())
	}
	cols, rows := screen.Size()
	if w, hgt := f.Size(); w != float64(cols)*DefaultCellWidth || hgt != float64(rows)*DefaultCellHeight {
		t.Errorf("field size = %v,%v, want %dx%d cells", w, hgt, cols, rows)
	}

	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if attached != f {
		t.Error("OnField was not called with the running field")
	}
}

func TestHostEscape(t *testing.T) {
	_, screen, done := startHost(t, context.Background(), Config{Count: 5})
	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestHostContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, _, done := startHost(t, ctx, Config{Count: 5})
	cancel()
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestHostResize(t *testing.T) {
	h, screen, done := startHost(t, context.Background(), Config{Count: 5, CellWidth: 1, CellHeight: 1})

	screen.SetSize(30, 12)
	_ = screen.PostEvent(tcell.NewEventResize(30, 12))

	deadline := time.Now().Add(2 * time.Second)
	for {
		w, hgt := h.Field().Size()
		if w == 30 && hgt == 12 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("field size = %v,%v after resize, want 30,12", w, hgt)
		}
		time.Sleep(time.Millisecond)
	}

	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestHostOnFieldError(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	r := snowfall.NewRenderer()
	boom := errors.New("listen failed")
	h, err := NewHost(screen, r, Config{
		Count:   5,
		OnField: func(*snowfall.Field) error { return boom },
	})
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()
	if err := waitRun(t, done); !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want the OnField error", err)
	}
	if r.Running() {
		t.Error("renderer started after OnField failed")
	}
}

func TestHostInvalidField(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	h, err := NewHost(screen, snowfall.NewRenderer(), Config{Count: -1})
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	if err := h.Run(context.Background()); !errors.Is(err, snowfall.ErrInvalidConfiguration) {
		t.Errorf("Run() = %v, want ErrInvalidConfiguration", err)
	}
}

func TestIsQuit(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want bool
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift), true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
	}
	for _, tt := range tests {
		if got := isQuit(tt.ev); got != tt.want {
			t.Errorf("isQuit(%v) = %v, want %v", tt.ev.Name(), got, tt.want)
		}
	}
}
