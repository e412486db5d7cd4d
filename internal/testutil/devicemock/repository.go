package devicemock

import (
	"context"

	domain "loan-tracker/internal/domain/device"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	UpsertFn        func(ctx context.Context, d *domain.Device) error
	ListByUserFn    func(ctx context.Context, userID string) ([]domain.Device, error)
	DeleteByTokenFn func(ctx context.Context, token string) error
}

func (m *Repo) Upsert(ctx context.Context, d *domain.Device) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Device, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) DeleteByToken(ctx context.Context, token string) error {
	if m.DeleteByTokenFn != nil {
		return m.DeleteByTokenFn(ctx, token)
	}
	return nil
}
