package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/carelink/hospital-portal/internal/core/domain"
	"github.com/carelink/hospital-portal/internal/core/ports"
)

var errNoSources = errors.New("no hospital sources configured")

type specialityService struct {
	sources []ports.Source
	cache   ports.SpecialityCache
	log     zerolog.Logger
}

// NewSpecialityService returns a SpecialityService that fans out to the given
// hospital sources. cache may be nil to disable caching.
func NewSpecialityService(sources []ports.Source, cache ports.SpecialityCache, log zerolog.Logger) ports.SpecialityService {
	return &specialityService{sources: sources, cache: cache, log: log}
}

// Search queries every source concurrently and reports, per source, the
// specialities matching the target (case-insensitive). A source that fails is
// marked Failed with an empty list; it never blocks or poisons the others.
// The only error Search itself returns is having nothing to fan out to.
func (s *specialityService) Search(ctx context.Context, speciality string) ([]domain.SourceResult, error) {
	if len(s.sources) == 0 {
		return nil, errNoSources
	}

	results := make([]domain.SourceResult, len(s.sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = s.querySource(ctx, src, speciality)
			// Per-source failures are folded into the result slot; returning
			// an error here would cancel the sibling fetches.
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (s *specialityService) querySource(ctx context.Context, src ports.Source, speciality string) domain.SourceResult {
	specs, err := s.listSpecialities(ctx, src)
	if err != nil {
		s.log.Warn().Err(err).Str("source", src.Name).Msg("hospital source fetch failed")
		return domain.SourceResult{Source: src.Name, Specialities: []domain.Speciality{}, Failed: true}
	}

	matches := make([]domain.Speciality, 0, len(specs))
	for _, sp := range specs {
		if strings.EqualFold(strings.TrimSpace(sp.Name), strings.TrimSpace(speciality)) {
			matches = append(matches, sp)
		}
	}
	return domain.SourceResult{Source: src.Name, Specialities: matches}
}

// listSpecialities consults the cache first and falls back to the upstream
// source. Cache errors are logged and ignored.
func (s *specialityService) listSpecialities(ctx context.Context, src ports.Source) ([]domain.Speciality, error) {
	if s.cache != nil {
		specs, ok, err := s.cache.Get(ctx, src.Name)
		if err != nil {
			s.log.Warn().Err(err).Str("source", src.Name).Msg("speciality cache read failed, fetching upstream")
		} else if ok {
			return specs, nil
		}
	}

	specs, err := src.Client.FetchSpecialities(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, src.Name, specs); err != nil {
			s.log.Warn().Err(err).Str("source", src.Name).Msg("speciality cache write failed")
		}
	}
	return specs, nil
}
