package order

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository is the persistent order table. Transition updates are
// conditional on the current status so concurrent transitions on the
// same order cannot corrupt it.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByToken(ctx context.Context, token string) (*Order, error)
	List(ctx context.Context, status *Status) ([]*Order, error)
	LatestByDevice(ctx context.Context, deviceID string) (*Order, error)
	ListDeliveredByDevice(ctx context.Context, deviceID string) ([]*Order, error)
	MarkDelivered(ctx context.Context, id, imagesJSON, text string, at time.Time) (bool, error)
	SetNotified(ctx context.Context, id string, notified bool) error
	MarkViewed(ctx context.Context, id string, at time.Time) (bool, error)
	MarkDownloaded(ctx context.Context, id string, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return &o, err
}

func (r *repository) GetByToken(ctx context.Context, token string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).Where("delivery_token = ?", token).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return &o, err
}

func (r *repository) List(ctx context.Context, status *Status) ([]*Order, error) {
	var orders []*Order
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *repository) LatestByDevice(ctx context.Context, deviceID string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("created_at DESC").
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return &o, err
}

func (r *repository) ListDeliveredByDevice(ctx context.Context, deviceID string) ([]*Order, error) {
	var orders []*Order
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND status IN ?", deviceID,
			[]Status{StatusDelivered, StatusViewed, StatusDownloaded}).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// MarkDelivered transitions pending/processing to delivered and attaches
// the artifacts. Returns false when the order was not in a deliverable
// state (e.g. a concurrent deliver won).
func (r *repository) MarkDelivered(ctx context.Context, id, imagesJSON, text string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status IN ?", id, []Status{StatusPending, StatusProcessing}).
		Updates(map[string]interface{}{
			"status":          StatusDelivered,
			"delivery_images": imagesJSON,
			"delivery_text":   text,
			"delivered_at":    at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) SetNotified(ctx context.Context, id string, notified bool) error {
	return r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Update("notified", notified).Error
}

// MarkViewed is a no-op unless the current status is exactly delivered.
func (r *repository) MarkViewed(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", id, StatusDelivered).
		Updates(map[string]interface{}{
			"status":    StatusViewed,
			"viewed_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

// MarkDownloaded succeeds from delivered or viewed, no-op otherwise.
func (r *repository) MarkDownloaded(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status IN ?", id, []Status{StatusDelivered, StatusViewed}).
		Updates(map[string]interface{}{
			"status":        StatusDownloaded,
			"downloaded_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Order{}).Error
}
