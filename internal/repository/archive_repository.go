package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/supply-contracts/internal/model"
)

// ArchiveRepository copies registry snapshots into Postgres.
type ArchiveRepository struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

func (r *ArchiveRepository) SaveSnapshot(ctx context.Context, snapshot model.Snapshot) (*model.ArchiveEntry, error) {
	entry := &model.ArchiveEntry{
		ID:            uuid.New(),
		ContractCount: len(snapshot.Contracts),
		CustomerCount: len(snapshot.Customers),
		EngineerCount: len(snapshot.SalesEngineers),
		CreatedAt:     time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			INSERT INTO archive_snapshot (id, contract_count, customer_count, engineer_count, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, entry.ID, entry.ContractCount, entry.CustomerCount, entry.EngineerCount, entry.CreatedAt).Error; err != nil {
			return err
		}

		for i, c := range snapshot.Contracts {
			if err := tx.Exec(`
				INSERT INTO archive_contract
					(snapshot_id, position, contract_id, product_type, quantity, delivery_term, delivery_term_in_days, cost)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, entry.ID, i, c.ContractID, c.ProductType, c.Quantity, c.DeliveryTerm, c.DeliveryTermInDays, c.Cost).Error; err != nil {
				return err
			}
		}

		for i, c := range snapshot.Customers {
			if err := tx.Exec(`
				INSERT INTO archive_customer
					(snapshot_id, position, contract_id, enterprise_name, full_name, address, phone_number)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, entry.ID, i, c.ContractID, c.EnterpriseName, c.FullName, c.Address, c.PhoneNumber).Error; err != nil {
				return err
			}
		}

		for i, e := range snapshot.SalesEngineers {
			if err := tx.Exec(`
				INSERT INTO archive_engineer
					(snapshot_id, position, enterprise_name, full_name, address, phone_number, work_experience)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, entry.ID, i, e.EnterpriseName, e.FullName, e.Address, e.PhoneNumber, e.WorkExperience).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ArchiveRepository) ListSnapshots(ctx context.Context, limit int) ([]model.ArchiveEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []model.ArchiveEntry
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_count, customer_count, engineer_count, created_at
		FROM archive_snapshot
		ORDER BY created_at DESC
		LIMIT ?
	`, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
