package ports

import (
	"context"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

// SourceClient fetches the full speciality listing from one hospital source.
type SourceClient interface {
	FetchSpecialities(ctx context.Context) ([]domain.Speciality, error)
}

// Source is a named hospital endpoint the aggregator fans out to.
type Source struct {
	Name   string
	Client SourceClient
}

// SpecialityService answers "which hospitals offer this speciality".
type SpecialityService interface {
	Search(ctx context.Context, speciality string) ([]domain.SourceResult, error)
}

// SpecialityCache stores a source's raw speciality listing for a short TTL so
// repeated searches do not hammer the upstream hospitals.
type SpecialityCache interface {
	Get(ctx context.Context, source string) ([]domain.Speciality, bool, error)
	Set(ctx context.Context, source string, specs []domain.Speciality) error
}
