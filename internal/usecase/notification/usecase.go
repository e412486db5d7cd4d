package notification

import (
	"context"
	"errors"
	"strings"

	"loan-tracker/internal/domain/device"
	domain "loan-tracker/internal/domain/notification"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxPage keeps the row offset far from int overflow.
	MaxPage = 1_000_000
)

type PageDTO struct {
	Data     []domain.Notification `json:"data"`
	Page     int                   `json:"page"`
	PerPage  int                   `json:"per_page"`
	Total    int64                 `json:"total"`
	LastPage int                   `json:"last_page"`
}

type Usecase struct {
	repo    domain.Repository
	devices device.Repository
}

func NewUsecase(repo domain.Repository, devices device.Repository) *Usecase {
	return &Usecase{repo: repo, devices: devices}
}

// List returns one page of userID's inbox, newest first. Out of range paging
// values fall back to page 1 and DefaultPerPage; pages past MaxPage are
// clamped to it.
func (u *Usecase) List(ctx context.Context, userID string, page, perPage int) (*PageDTO, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	rows, total, err := u.repo.ListByUser(ctx, userID, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.Notification{}
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return &PageDTO{Data: rows, Page: page, PerPage: perPage, Total: total, LastPage: last}, nil
}

func (u *Usecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return u.repo.CountUnread(ctx, userID)
}

func (u *Usecase) get(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, err := u.repo.GetByNotificationID(ctx, userID, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (u *Usecase) MarkRead(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, err := u.get(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	if err := u.repo.MarkRead(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (u *Usecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return u.repo.MarkAllRead(ctx, userID)
}

func (u *Usecase) Delete(ctx context.Context, userID, notificationID string) error {
	n, err := u.get(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, n)
}

// RegisterDevice binds a push token to userID, taking it over from any
// previous owner.
func (u *Usecase) RegisterDevice(ctx context.Context, userID, token, platform string) (*device.Device, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, device.ErrTokenRequired
	}
	d := &device.Device{UserID: userID, Token: token, Platform: strings.ToLower(strings.TrimSpace(platform))}
	if err := u.devices.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
