package dao

import (
	"context"
	"time"

	"go-shopadmin/internal/domain/model"

	"gorm.io/gorm"
)

const loginDefaultLimit = 10

// UserLoginDAO records and pages the append-only login history.
type UserLoginDAO struct {
	DB *gorm.DB
}

func NewUserLoginDAO(db *gorm.DB) *UserLoginDAO { return &UserLoginDAO{DB: db} }

func (d *UserLoginDAO) Create(ctx context.Context, l *model.UserLogin) error {
	l.ID = 0
	l.DateAdded = time.Now()
	return storageErr("login create", d.DB.WithContext(ctx).Create(l).Error)
}

// ListByUserID pages in storage order; no explicit ORDER BY is imposed.
// Bounds always apply here: start clamps to 0, limit below 1 to the default.
func (d *UserLoginDAO) ListByUserID(ctx context.Context, userID int64, start, limit int) ([]model.UserLogin, error) {
	if start < 0 {
		start = 0
	}
	if limit < 1 {
		limit = loginDefaultLimit
	}
	var list []model.UserLogin
	err := d.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Offset(start).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, storageErr("login list", err)
	}
	return list, nil
}

func (d *UserLoginDAO) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := d.DB.WithContext(ctx).Model(&model.UserLogin{}).
		Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return 0, storageErr("login count", err)
	}
	return total, nil
}
