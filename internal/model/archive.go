package model

import (
	"time"

	"github.com/google/uuid"
)

type ArchiveEntry struct {
	ID            uuid.UUID `json:"id"`
	ContractCount int       `json:"contract_count"`
	CustomerCount int       `json:"customer_count"`
	EngineerCount int       `json:"engineer_count"`
	CreatedAt     time.Time `json:"created_at"`
}
