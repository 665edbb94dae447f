package sqlstore

import (
	"context"
	"time"

	"homechef-api/models"
	"homechef-api/store"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = newID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, email string) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).Where("user_email = ?", email).Order("created_at desc").Find(&orders).Error
	return orders, translate(err)
}

func (r *orderRepo) ListByChef(ctx context.Context, chefID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).Where("chef_id = ?", chefID).Order("created_at desc").Find(&orders).Error
	return orders, translate(err)
}

// UpdateStatus reads and rewrites the history column, so it runs in its own
// transaction (a savepoint when already inside one).
func (r *orderRepo) UpdateStatus(ctx context.Context, id string, change models.StatusChange, markPaid bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if order.OrderStatus != change.From {
			return store.ErrConflict
		}

		values := models.Order{
			OrderStatus:   change.To,
			StatusHistory: append(order.StatusHistory, change),
		}
		fields := []string{"OrderStatus", "StatusHistory"}
		if markPaid {
			values.PaymentStatus = models.PaymentPaid
			fields = append(fields, "PaymentStatus")
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND order_status = ?", id, change.From).
			Select(fields).
			Updates(&values)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return store.ErrConflict
		}
		return nil
	})
}

func (r *orderRepo) MarkPaid(ctx context.Context, id, transactionID string, paidAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"payment_time":   paidAt,
			"transaction_id": transactionID,
		})
	return affected(res)
}
