package promo

import (
	"context"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/discount"
)

// bloomFPR keeps false positives rare enough that almost every unknown code
// is rejected without a repository round trip.
const (
	bloomFPR         = 0.001
	bloomMinCapacity = 1024
)

// Resolver turns a promo code into a discount strategy. An empty code
// resolves to NoDiscount.
type Resolver interface {
	Resolve(ctx context.Context, code string) (discount.Strategy, error)
}

// RepoResolver implements Resolver against a Repository, optionally guarded
// by a bloom filter over the known codes so unknown codes short-circuit.
type RepoResolver struct {
	repo   Repository
	filter *bloom.BloomFilter
}

// NewRepoResolver creates a RepoResolver without a filter; every non-empty
// code goes to the repository.
func NewRepoResolver(repo Repository) *RepoResolver {
	return &RepoResolver{repo: repo}
}

// WarmFilter builds the bloom prefilter from the repository's current code
// set. Codes added after warming are invisible until the next warm, so call
// it at startup or after ingest runs.
func (r *RepoResolver) WarmFilter(ctx context.Context) error {
	codes, err := r.repo.ListCodes(ctx)
	if err != nil {
		return errors.Wrap(err, "list promo codes")
	}

	capacity := uint(len(codes))
	if capacity < bloomMinCapacity {
		capacity = bloomMinCapacity
	}

	filter := bloom.NewWithEstimates(capacity, bloomFPR)
	for _, code := range codes {
		filter.AddString(code)
	}
	r.filter = filter
	return nil
}

// Resolve returns the discount strategy for code. An empty code yields
// NoDiscount; a code rejected by the filter or missing from the repository
// yields ErrCodeNotFound.
func (r *RepoResolver) Resolve(ctx context.Context, code string) (discount.Strategy, error) {
	if code == "" {
		return discount.NoDiscount{}, nil
	}

	if r.filter != nil && !r.filter.TestString(code) {
		return nil, ErrCodeNotFound
	}

	rule, err := r.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, errors.Wrap(err, "lookup promo code")
	}

	return rule.Strategy()
}
