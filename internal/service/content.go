package service

import (
	"context"
	"errors"
	"fmt"

	"lab-portal/internal/common"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
)

// ContentService manages one kind of per-product content document (lab
// manuals, FAQs, course videos, course materials).
type ContentService[T any] interface {
	List(ctx context.Context) ([]T, error)
	ListByProduct(ctx context.Context, product string) ([]T, error)
	// Create fails with common.ErrAlreadyExists if the product already has one.
	Create(ctx context.Context, doc *T) error
	// Save upserts by product and reports whether a new record was created.
	Save(ctx context.Context, doc *T) (bool, error)
	UpdateByProduct(ctx context.Context, doc *T) error
	UpdateByID(ctx context.Context, id string, doc *T) error
	DeleteByProduct(ctx context.Context, product string) (int64, error)
}

type contentServiceImpl[T any, PT model.ProductDocument[T]] struct {
	kind        string
	repo        repository.DocumentRepository[T]
	productRepo repository.ProductRepository
}

func NewContentService[T any, PT model.ProductDocument[T]](
	kind string,
	repo repository.DocumentRepository[T],
	productRepo repository.ProductRepository,
) ContentService[T] {
	return &contentServiceImpl[T, PT]{
		kind:        kind,
		repo:        repo,
		productRepo: productRepo,
	}
}

func (s *contentServiceImpl[T, PT]) List(ctx context.Context) ([]T, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return s.withTitles(ctx, docs)
}

func (s *contentServiceImpl[T, PT]) ListByProduct(ctx context.Context, product string) ([]T, error) {
	docs, err := s.repo.FindByProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("list %s for product %s: %w", s.kind, product, err)
	}
	return s.withTitles(ctx, docs)
}

func (s *contentServiceImpl[T, PT]) Create(ctx context.Context, doc *T) error {
	product := PT(doc).ProductID()

	exists, err := s.repo.ExistsForProduct(ctx, product)
	if err != nil {
		return fmt.Errorf("check %s for product %s: %w", s.kind, product, err)
	}
	if exists {
		return fmt.Errorf("%s for product %s: %w", s.kind, product, common.ErrAlreadyExists)
	}

	PT(doc).Meta().ID = ""
	if err := s.repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("create %s: %w", s.kind, err)
	}
	return nil
}

func (s *contentServiceImpl[T, PT]) Save(ctx context.Context, doc *T) (bool, error) {
	product := PT(doc).ProductID()

	existing, err := s.repo.FindOneByProduct(ctx, product)
	switch {
	case errors.Is(err, common.ErrNotFound):
		PT(doc).Meta().ID = ""
		if err := s.repo.Create(ctx, doc); err != nil {
			return false, fmt.Errorf("create %s: %w", s.kind, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("find %s for product %s: %w", s.kind, product, err)
	}

	adopt(PT(doc), PT(existing))
	if err := s.repo.Save(ctx, doc); err != nil {
		return false, fmt.Errorf("update %s: %w", s.kind, err)
	}
	return false, nil
}

func (s *contentServiceImpl[T, PT]) UpdateByProduct(ctx context.Context, doc *T) error {
	product := PT(doc).ProductID()

	existing, err := s.repo.FindOneByProduct(ctx, product)
	if err != nil {
		return fmt.Errorf("%s for product %s: %w", s.kind, product, err)
	}

	adopt(PT(doc), PT(existing))
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("update %s: %w", s.kind, err)
	}
	return nil
}

func (s *contentServiceImpl[T, PT]) UpdateByID(ctx context.Context, id string, doc *T) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s %s: %w", s.kind, id, err)
	}

	if PT(doc).ProductID() == "" {
		PT(doc).SetProduct(PT(existing).ProductID())
	}
	adopt(PT(doc), PT(existing))
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("update %s: %w", s.kind, err)
	}
	return nil
}

func (s *contentServiceImpl[T, PT]) DeleteByProduct(ctx context.Context, product string) (int64, error) {
	n, err := s.repo.DeleteByProduct(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("delete %s for product %s: %w", s.kind, product, err)
	}
	return n, nil
}

func (s *contentServiceImpl[T, PT]) withTitles(ctx context.Context, docs []T) ([]T, error) {
	ids := make([]string, 0, len(docs))
	for i := range docs {
		ids = append(ids, PT(&docs[i]).ProductID())
	}

	titles, err := productTitles(ctx, s.productRepo, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve product titles: %w", err)
	}

	for i := range docs {
		doc := PT(&docs[i])
		doc.SetProductTitle(titles[doc.ProductID()])
	}
	return docs, nil
}

// adopt makes doc replace existing: same identity and creation time.
func adopt[D interface{ Meta() *model.Document }](doc, existing D) {
	meta := doc.Meta()
	meta.ID = existing.Meta().ID
	meta.CreatedAt = existing.Meta().CreatedAt
}
