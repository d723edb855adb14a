package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
)

func newAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func tracks() []domain.Track {
	return []domain.Track{
		{
			TrackName: "Song One",
			Artists:   "Artist A",
			Genre:     "pop",
			Features: domain.AudioFeatures{
				Popularity: 70, Danceability: 0.25, Energy: 0.5, Valence: 0.75, Tempo: 120,
				Loudness: -6.5, Acousticness: 0.2, Speechiness: 0.04, Instrumentalness: 0.1, Liveness: 0.3,
			},
		},
		{TrackName: "Song Two", Artists: "Artist B", Genre: "rock", Features: domain.AudioFeatures{Energy: 0.9}},
	}
}

func TestAdapter_LoadSample(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, a *Adapter)
		fingerprint string
		target      int
		wantErr     error
		want        []domain.Track
	}{
		{
			name:        "not found",
			setup:       func(t *testing.T, a *Adapter) {},
			fingerprint: "missing",
			target:      10,
			wantErr:     domain.ErrNotFound,
		},
		{
			name: "returns tracks in stored order",
			setup: func(t *testing.T, a *Adapter) {
				entry := ports.CatalogEntry{Fingerprint: "fp", Source: "a.csv", Target: 10, RawRows: 2}
				if err := a.SaveSample(context.Background(), entry, tracks()); err != nil {
					t.Fatalf("save: %v", err)
				}
			},
			fingerprint: "fp",
			target:      10,
			want:        tracks(),
		},
		{
			name: "target is part of the key",
			setup: func(t *testing.T, a *Adapter) {
				entry := ports.CatalogEntry{Fingerprint: "fp", Source: "a.csv", Target: 10}
				if err := a.SaveSample(context.Background(), entry, tracks()); err != nil {
					t.Fatalf("save: %v", err)
				}
			},
			fingerprint: "fp",
			target:      20,
			wantErr:     domain.ErrNotFound,
		},
		{
			name: "save replaces previous sample",
			setup: func(t *testing.T, a *Adapter) {
				entry := ports.CatalogEntry{Fingerprint: "fp", Source: "a.csv", Target: 10}
				if err := a.SaveSample(context.Background(), entry, tracks()); err != nil {
					t.Fatalf("save: %v", err)
				}
				if err := a.SaveSample(context.Background(), entry, tracks()[1:]); err != nil {
					t.Fatalf("resave: %v", err)
				}
			},
			fingerprint: "fp",
			target:      10,
			want:        tracks()[1:],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdapter(t)
			tt.setup(t, a)

			entry, got, err := a.LoadSample(context.Background(), tt.fingerprint, tt.target)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if entry.Source != "a.csv" || entry.StoredAt.IsZero() {
				t.Fatalf("unexpected entry %+v", entry)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("tracks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapter_Entries(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()
	older := ports.CatalogEntry{Fingerprint: "old", Source: "a.csv", Target: 10, StoredAt: time.Unix(100, 0)}
	newer := ports.CatalogEntry{Fingerprint: "new", Source: "b.csv", Target: 10, StoredAt: time.Unix(200, 0)}
	for _, e := range []ports.CatalogEntry{older, newer} {
		if err := a.SaveSample(ctx, e, nil); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := a.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(got) != 2 || got[0].Fingerprint != "new" || got[1].Fingerprint != "old" {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestAdapter_SaveRequiresFingerprint(t *testing.T) {
	a := newAdapter(t)
	if err := a.SaveSample(context.Background(), ports.CatalogEntry{}, tracks()); err == nil {
		t.Fatal("expected error for empty fingerprint")
	}
}
