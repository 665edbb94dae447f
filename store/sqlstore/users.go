package sqlstore

import (
	"context"
	"time"

	"homechef-api/models"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&users).Error
	return users, translate(err)
}

func (r *userRepo) SetRole(ctx context.Context, email string, role models.UserRole, chefID *string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"role": role, "chef_id": chefID})
	return affected(res)
}

func (r *userRepo) SetStatus(ctx context.Context, id string, status models.UserStatus) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status)
	return affected(res)
}

func (r *userRepo) ChefIDExists(ctx context.Context, chefID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("chef_id = ?", chefID).Count(&count).Error
	return count > 0, translate(err)
}
