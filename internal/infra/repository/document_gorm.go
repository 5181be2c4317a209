package repository

import (
	"context"
	"errors"

	"salesnote/internal/domain/model"
	repo "salesnote/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentGormRepository struct {
	db *gorm.DB
}

func NewDocumentGormRepository(db *gorm.DB) *DocumentGormRepository {
	return &DocumentGormRepository{db: db}
}

// 再保存したら未読に戻る
func (r *DocumentGormRepository) Store(ctx context.Context, orderID string, content []byte) error {
	doc := model.Document{
		OrderID:     orderID,
		ObjectKey:   model.DocumentObjectKey(orderID),
		Content:     content,
		ContentType: model.DocumentContentType,
		ReadFlag:    false,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"object_key", "content", "content_type", "read_flag", "updated_at"}),
		}).
		Create(&doc).Error
}

func (r *DocumentGormRepository) FetchAndMarkRead(ctx context.Context, orderID string) (model.Document, bool, error) {
	var doc model.Document
	var wasRead bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//行ロックしてから読む
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			First(&doc).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if findErr != nil {
			return findErr
		}
		wasRead = doc.ReadFlag

		//メタデータは置き換え（マージしない）
		return tx.Model(&model.Document{}).
			Where("order_id = ?", orderID).
			Updates(map[string]interface{}{
				"content_type": model.DocumentContentType,
				"read_flag":    true,
			}).Error
	})
	if err != nil {
		return model.Document{}, false, err
	}

	doc.ReadFlag = true
	return doc, wasRead, nil
}
