// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pdiddy/slidemerge/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(inputDir string, succeeded, failed int) *types.MergeReport {
	r := &types.MergeReport{
		InputDir:  inputDir,
		StartedAt: time.Now().UTC(),
		Duration:  1500 * time.Millisecond,
	}
	for i := 0; i < succeeded; i++ {
		r.Succeeded = append(r.Succeeded, types.ConversionResult{Outcome: types.OutcomeConverted})
	}
	for i := 0; i < failed; i++ {
		r.Failed = append(r.Failed, types.ConversionResult{Outcome: types.OutcomeFailed})
	}
	return r
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok := sampleReport("/input/a", 3, 1)
	ok.OutputPath = "/output/merged.pdf"
	if err := s.Record(ctx, ok, nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	bad := sampleReport("/input/b", 0, 2)
	if err := s.Record(ctx, bad, errors.New("nothing to merge")); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].InputDir != "/input/b" {
		t.Errorf("runs[0].InputDir = %q, want /input/b", runs[0].InputDir)
	}
	if runs[0].Error != "nothing to merge" {
		t.Errorf("runs[0].Error = %q, want recorded run error", runs[0].Error)
	}
	if runs[1].OutputPath != "/output/merged.pdf" {
		t.Errorf("runs[1].OutputPath = %q, want /output/merged.pdf", runs[1].OutputPath)
	}
	if runs[1].Succeeded != 3 || runs[1].Failed != 1 {
		t.Errorf("runs[1] counts = (%d, %d), want (3, 1)", runs[1].Succeeded, runs[1].Failed)
	}
	if runs[1].Duration != 1500*time.Millisecond {
		t.Errorf("runs[1].Duration = %v, want 1.5s", runs[1].Duration)
	}
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, sampleReport("/input", 1, 0), nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{Dir: dir}

	s, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(context.Background(), sampleReport("/input", 1, 0), nil); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s2.Close()

	runs, err := s2.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs after reopen, want 1", len(runs))
	}
}
