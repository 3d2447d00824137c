package ui

import (
	"sync"
	"testing"
)

func TestGetViewContext_Singleton(t *testing.T) {
	ctx1 := GetViewContext()
	ctx2 := GetViewContext()

	if ctx1 != ctx2 {
		t.Error("GetViewContext should return the same instance")
	}
}

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(120, 40, false)

	if ctx.TerminalWidth != 120 || ctx.ChatWidth != 120 {
		t.Errorf("Expected width 120, got terminal %d chat %d", ctx.TerminalWidth, ctx.ChatWidth)
	}
	if ctx.TerminalHeight != 40 {
		t.Errorf("Expected TerminalHeight 40, got %d", ctx.TerminalHeight)
	}
	if ctx.HeaderHeight != HeaderHeight || ctx.FooterHeight != FooterHeight {
		t.Errorf("Expected header %d footer %d, got %d %d", HeaderHeight, FooterHeight, ctx.HeaderHeight, ctx.FooterHeight)
	}

	expectedContent := 40 - HeaderHeight - FooterHeight
	if ctx.ContentHeight != expectedContent {
		t.Errorf("Expected ContentHeight %d, got %d", expectedContent, ctx.ContentHeight)
	}
	if ctx.Degraded || ctx.Compact {
		t.Error("normal layout should be neither degraded nor compact")
	}
}

func TestViewContext_CompactDropsFooter(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(80, 30, true)

	if ctx.FooterHeight != 0 {
		t.Errorf("Expected no footer in compact mode, got %d", ctx.FooterHeight)
	}
	if ctx.ContentHeight != 30-HeaderHeight {
		t.Errorf("Expected ContentHeight %d, got %d", 30-HeaderHeight, ctx.ContentHeight)
	}
}

func TestViewContext_UnknownHeightDegrades(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(80, 0, false)

	if !ctx.Degraded {
		t.Fatal("Expected degraded layout for zero height")
	}
	if ctx.HeaderHeight != 0 || ctx.FooterHeight != 0 {
		t.Error("Degraded layout should give the whole viewport to the log")
	}
	if ctx.ContentHeight != MinTerminalHeight {
		t.Errorf("Expected ContentHeight %d, got %d", MinTerminalHeight, ctx.ContentHeight)
	}
}

func TestViewContext_MinimumWidth(t *testing.T) {
	ctx := GetViewContext()
	ctx.UpdateTerminalSize(5, 40, false)

	if ctx.TerminalWidth != MinTerminalWidth {
		t.Errorf("Expected width clamped to %d, got %d", MinTerminalWidth, ctx.TerminalWidth)
	}
}

func TestViewContext_InnerDimensions(t *testing.T) {
	ctx := GetViewContext()

	tests := []struct {
		panel int
		want  int
	}{
		{100, 98},
		{50, 48},
		{2, 0},
	}

	for _, tt := range tests {
		if got := ctx.InnerWidth(tt.panel); got != tt.want {
			t.Errorf("InnerWidth(%d) = %d, want %d", tt.panel, got, tt.want)
		}
		if got := ctx.InnerHeight(tt.panel); got != tt.want {
			t.Errorf("InnerHeight(%d) = %d, want %d", tt.panel, got, tt.want)
		}
	}
}

func TestViewContext_ConcurrentUpdates(t *testing.T) {
	ctx := GetViewContext()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ctx.UpdateTerminalSize(80+n, 24+n, n%2 == 0)
		}(i)
	}
	wg.Wait()

	if ctx.TerminalWidth < 80 {
		t.Errorf("unexpected width after concurrent updates: %d", ctx.TerminalWidth)
	}
}
