package sqlstore

import (
	"context"

	"homechef-api/models"

	"gorm.io/gorm"
)

type paymentRepo struct {
	db *gorm.DB
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = newID()
	}
	return translate(r.db.WithContext(ctx).Create(payment).Error)
}

func (r *paymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *paymentRepo) ListByUser(ctx context.Context, email string) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := r.db.WithContext(ctx).Where("user_email = ?", email).Order("paid_at desc").Find(&payments).Error
	return payments, translate(err)
}
