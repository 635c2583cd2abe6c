package store

import (
	"context"

	"gorm.io/gorm"

	"readerspace-backend/apperrors"
	"readerspace-backend/models"
)

// SQLStore keeps the dataset in two tables and replaces their contents in one
// transaction on every save.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the member tables and returns the store
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&models.MemberRecord{}, &models.PaymentRecord{}); err != nil {
		return nil, apperrors.NewStorageError("migrate", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Load(ctx context.Context) (models.Dataset, error) {
	var records []models.MemberRecord
	err := s.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Find(&records).Error
	if err != nil {
		return nil, apperrors.NewStorageError("load", err)
	}

	ds := make(models.Dataset, len(records))
	for _, record := range records {
		ds[record.Code] = record.Member()
	}
	if err := ds.Validate(); err != nil {
		return nil, apperrors.NewStorageError("load", err)
	}
	return ds, nil
}

func (s *SQLStore) Save(ctx context.Context, ds models.Dataset) error {
	records := make([]models.MemberRecord, 0, len(ds))
	for _, code := range ds.Codes() {
		records = append(records, models.NewMemberRecord(code, ds[code]))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.PaymentRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.MemberRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return apperrors.NewStorageError("save", err)
	}
	return nil
}
