package dao

import (
	"context"
	"errors"

	"go-shopadmin/internal/domain/model"

	"gorm.io/gorm"
)

type UserGroupDAO struct {
	DB *gorm.DB
}

func NewUserGroupDAO(db *gorm.DB) *UserGroupDAO { return &UserGroupDAO{DB: db} }

func (d *UserGroupDAO) GetByID(ctx context.Context, id int64) (*model.UserGroup, error) {
	var g model.UserGroup
	if err := d.DB.WithContext(ctx).First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("user group get", err)
	}
	return &g, nil
}

func (d *UserGroupDAO) List(ctx context.Context) ([]model.UserGroup, error) {
	var list []model.UserGroup
	if err := d.DB.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, storageErr("user group list", err)
	}
	return list, nil
}
