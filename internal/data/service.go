package data

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hcd-tokyo/lp/internal/csv"
	"github.com/hcd-tokyo/lp/internal/fetch"
)

// Sources names the resource locations of the four CSV masters.
type Sources struct {
	TextCatalog string
	Speakers    string
	Schedule    string
	Assets      string
}

// Service owns the memoized loads of every CSV source.
//
// Each source is fetched at most once per process: the first caller
// triggers the load and every concurrent or later caller shares its
// outcome, error included. There is no retry; a failed source stays failed
// until the process restarts, and callers fall back to their built-in
// defaults. One source failing never affects its siblings.
type Service struct {
	client  *fetch.Client
	sources Sources

	catalog  memo[*TextCatalog]
	speakers memo[*SpeakerRegistry]
	schedule memo[*ScheduleRegistry]
	assets   memo[AssetManifest]
	program  memo[*Program]
}

// NewService returns a Service reading from the given sources.
func NewService(client *fetch.Client, sources Sources) *Service {
	return &Service{client: client, sources: sources}
}

// TextCatalog returns the memoized text master.
func (s *Service) TextCatalog(ctx context.Context) (*TextCatalog, error) {
	return s.catalog.resolve(func() (*TextCatalog, error) {
		records, err := s.loadRecords(ctx, "text_catalog", s.sources.TextCatalog)
		if err != nil {
			return nil, err
		}
		return BuildTextCatalog(records), nil
	})
}

// Speakers returns the memoized speaker registry.
func (s *Service) Speakers(ctx context.Context) (*SpeakerRegistry, error) {
	return s.speakers.resolve(func() (*SpeakerRegistry, error) {
		records, err := s.loadRecords(ctx, "speakers", s.sources.Speakers)
		if err != nil {
			return nil, err
		}
		return BuildSpeakerRegistry(records), nil
	})
}

// Schedule returns the memoized schedule registry.
func (s *Service) Schedule(ctx context.Context) (*ScheduleRegistry, error) {
	return s.schedule.resolve(func() (*ScheduleRegistry, error) {
		records, err := s.loadRecords(ctx, "schedule", s.sources.Schedule)
		if err != nil {
			return nil, err
		}
		return BuildScheduleRegistry(records), nil
	})
}

// Assets returns the memoized asset manifest.
func (s *Service) Assets(ctx context.Context) (AssetManifest, error) {
	return s.assets.resolve(func() (AssetManifest, error) {
		records, err := s.loadRecords(ctx, "assets", s.sources.Assets)
		if err != nil {
			return nil, err
		}
		return BuildAssetManifest(records), nil
	})
}

// Program returns the memoized joined snapshot. The speaker and schedule
// loads run concurrently; the join happens once both have finished, in
// whichever order. If either source failed, the program as a whole is
// unavailable (its consumers fall back), while the sources that did load
// stay available to their own consumers.
func (s *Service) Program(ctx context.Context) (*Program, error) {
	return s.program.resolve(func() (*Program, error) {
		var (
			schedule *ScheduleRegistry
			speakers *SpeakerRegistry
		)

		// A plain group, not WithContext: one source failing must not
		// cancel the sibling fetch, whose outcome is memoized for its
		// own consumers.
		var g errgroup.Group
		g.Go(func() error {
			var err error
			schedule, err = s.Schedule(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			speakers, err = s.Speakers(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return BuildProgram(schedule, speakers), nil
	})
}

// Warm issues every load concurrently. Failures are logged and swallowed:
// a dead source must not take the process down, and each page section
// degrades to its own default copy independently.
func (s *Service) Warm(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		if _, err := s.TextCatalog(ctx); err != nil {
			slog.Warn("text catalog unavailable, sections will use defaults", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := s.Program(ctx); err != nil {
			slog.Warn("program data unavailable, sections will use defaults", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := s.Assets(ctx); err != nil {
			slog.Warn("asset manifest unavailable, photos will use raw basenames", "error", err)
		}
		return nil
	})
	_ = g.Wait()
}

// Status reports the load state of every source for health checks.
func (s *Service) Status() map[string]string {
	return map[string]string{
		"text_catalog": s.catalog.state(),
		"speakers":     s.speakers.state(),
		"schedule":     s.schedule.state(),
		"assets":       s.assets.state(),
		"program":      s.program.state(),
	}
}

// loadRecords fetches one source and parses it. Every attempt gets a load
// id so the single fetch per source can be correlated across log entries.
func (s *Service) loadRecords(ctx context.Context, name, location string) ([]csv.Record, error) {
	logger := slog.Default().With("source", name, "load_id", uuid.NewString())
	start := time.Now()

	text, err := s.client.Text(ctx, location)
	if err != nil {
		logger.Error("source fetch failed", "location", location, "error", err)
		return nil, err
	}

	records := csv.Parse(text)
	logger.Info("source loaded",
		"rows", len(records),
		"bytes", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

// memo is a lazily-initialized cell resolved at most once. Concurrent
// callers share the single in-flight resolution; the outcome, success or
// failure, is permanent.
type memo[T any] struct {
	once sync.Once
	done atomic.Bool
	val  T
	err  error
}

func (m *memo[T]) resolve(load func() (T, error)) (T, error) {
	m.once.Do(func() {
		m.val, m.err = load()
		m.done.Store(true)
	})
	return m.val, m.err
}

func (m *memo[T]) state() string {
	if !m.done.Load() {
		return "pending"
	}
	if m.err != nil {
		return "failed"
	}
	return "ok"
}
