package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-portal/internal/common"
	"lab-portal/internal/dto"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
)

func TestMachineFormService(t *testing.T) {
	deps := newTestDeps(t)
	svc := NewMachineFormService(repository.NewMachineFormRepository(deps.db), deps.productRepo, deps.logger).(*machineFormServiceImpl)
	ctx := context.Background()

	product := &model.Product{Title: "Red Team Lab"}
	require.NoError(t, deps.productRepo.Create(ctx, product))

	web := &model.MachineForm{ProductRef: model.ProductRef{Product: product.ID}, Machine: "web01", Flag: "user", Value: "f1"}
	db := &model.MachineForm{ProductRef: model.ProductRef{Product: product.ID}, Machine: "db01", Flag: "root", Value: "f2"}
	web2 := &model.MachineForm{ProductRef: model.ProductRef{Product: product.ID}, Machine: "web01", Flag: "root", Value: "f3"}
	for _, f := range []*model.MachineForm{web, db, web2} {
		require.NoError(t, svc.Create(ctx, f))
	}

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	_, err := svc.AddAnswer(ctx, web.ID, &dto.MachineAnswerRequest{UserID: "u1", Answer: "f1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(time.Hour) }
	answered, err := svc.AddAnswer(ctx, web.ID, &dto.MachineAnswerRequest{UserID: "u2", Answer: "nope"})
	require.NoError(t, err)
	assert.Len(t, answered.Answers, 2)

	_, err = svc.AddAnswer(ctx, "missing", &dto.MachineAnswerRequest{UserID: "u1", Answer: "x"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	byProduct, err := svc.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Red Team Lab", byProduct.ProductTitle)
	assert.Len(t, byProduct.Forms, 3)
	require.Len(t, byProduct.GroupedData["web01"], 2)
	require.Len(t, byProduct.GroupedData["db01"], 1)

	for _, f := range byProduct.GroupedData["web01"] {
		if f.ID == web.ID {
			require.Len(t, f.Answers, 2)
			assert.Equal(t, "u2", f.Answers[0].UserID, "newest answer first")
		}
	}

	require.NoError(t, svc.Delete(ctx, db.ID))
	assert.ErrorIs(t, svc.Delete(ctx, db.ID), common.ErrNotFound)

	n, err := svc.DeleteByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
