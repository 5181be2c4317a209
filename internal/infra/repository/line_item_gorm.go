package repository

import (
	"context"

	"salesnote/internal/domain/model"

	"gorm.io/gorm"
)

type LineItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewLineItemGormRepository(db *gorm.DB) *LineItemGormRepository {
	return &LineItemGormRepository{db: db}
}

func (r *LineItemGormRepository) Create(ctx context.Context, item model.LineItem) error {
	return r.db.WithContext(ctx).Create(&item).Error
}

func (r *LineItemGormRepository) ListByClientID(ctx context.Context, clientID string) ([]model.LineItem, error) {
	var items []model.LineItem
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// 読んだ時点のIDだけ削除する
func (r *LineItemGormRepository) DeleteByIDs(ctx context.Context, clientID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("client_id = ? AND id IN ?", clientID, ids).
		Delete(&model.LineItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
