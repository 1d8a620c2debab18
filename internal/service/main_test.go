package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"lab-portal/internal/client"
	"lab-portal/internal/logging"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
	"lab-portal/internal/testutil"
)

type testDeps struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.CheckoutUserRepository
	examRepo    repository.ExamRepository
	logger      logging.Logger
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	db := testutil.OpenDB(t)
	return &testDeps{
		db:          db,
		productRepo: repository.NewProductRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		userRepo:    repository.NewCheckoutUserRepository(db),
		examRepo:    repository.NewExamRepository(db),
		logger:      logging.Discard(),
	}
}

func (d *testDeps) createUser(t *testing.T, name, email string) *model.CheckoutUser {
	t.Helper()
	u := &model.CheckoutUser{Name: name, Email: email}
	if err := d.userRepo.Create(context.Background(), nil, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// recordingMail captures sent messages and optionally fails.
type recordingMail struct {
	mu   sync.Mutex
	sent []client.EmailMessage
	err  error
}

func (m *recordingMail) Send(_ context.Context, msg *client.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, *msg)
	return nil
}

func (m *recordingMail) last() *client.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return &m.sent[len(m.sent)-1]
}

var errSMTPDown = errors.New("smtp down")

