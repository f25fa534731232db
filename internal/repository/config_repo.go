package repository

import (
	"context"

	"tenaypos/internal/model"

	"gorm.io/gorm"
)

type StoreConfigRepository interface {
	Get(ctx context.Context) (*model.StoreConfig, error)
	Update(ctx context.Context, c *model.StoreConfig) error
}

type storeConfigRepo struct{ db *gorm.DB }

func NewStoreConfigRepository(db *gorm.DB) StoreConfigRepository {
	return &storeConfigRepo{db: db}
}

func (r *storeConfigRepo) Get(ctx context.Context) (*model.StoreConfig, error) {
	var c model.StoreConfig
	err := r.db.WithContext(ctx).
		Where(model.StoreConfig{SingletonKey: "main"}).
		FirstOrCreate(&c).Error
	return &c, err
}

func (r *storeConfigRepo) Update(ctx context.Context, c *model.StoreConfig) error {
	return r.db.WithContext(ctx).Save(c).Error
}
