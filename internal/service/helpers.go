package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"lab-portal/internal/common"
	"lab-portal/internal/repository"
)

const maxWriteAttempts = 3

// retryOnConflict re-runs fn while it reports a version conflict. fn must
// re-read whatever it writes.
func retryOnConflict(fn func() error) error {
	var err error
	for i := 0; i < maxWriteAttempts; i++ {
		if err = fn(); !errors.Is(err, common.ErrVersionConflict) {
			return err
		}
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sumAmounts adds amounts without accumulating float error.
func sumAmounts(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Float64()
	return f
}

// productTitles resolves catalog titles for the given product ids.
func productTitles(ctx context.Context, repo repository.ProductRepository, ids []string) (map[string]string, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return repo.TitlesByID(ctx, unique)
}
