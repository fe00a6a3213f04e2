package compositor

import (
	"context"
	"testing"

	"github.com/arashed/constellation"
)

func TestFakeRecordsHistory(t *testing.T) {
	ctx := context.Background()
	f := NewFake(constellation.Size{Width: 640, Height: 480})

	if got, err := f.WindowSize(ctx); err != nil || got.Width != 640 || got.Height != 480 {
		t.Fatalf("WindowSize = %v, %v, want {640 480}, nil", got, err)
	}

	if f.Last() != nil {
		t.Fatal("Last() on a fresh Fake should be nil")
	}

	tree1 := &constellation.SendableFrameTree{
		PipelineSnapshot: constellation.PipelineSnapshot{ID: 0, URL: "http://a/"},
	}
	tree2 := &constellation.SendableFrameTree{
		PipelineSnapshot: constellation.PipelineSnapshot{ID: 1, URL: "http://a/p1"},
	}

	if err := f.SetIds(ctx, tree1); err != nil {
		t.Fatalf("SetIds: %v", err)
	}
	if err := f.SetIds(ctx, tree2); err != nil {
		t.Fatalf("SetIds: %v", err)
	}

	if f.Last() != tree2 {
		t.Fatal("Last() should return the most recent SetIds argument")
	}
	hist := f.History()
	if len(hist) != 2 || hist[0] != tree1 || hist[1] != tree2 {
		t.Fatalf("History() = %v, want [tree1 tree2]", hist)
	}
}
