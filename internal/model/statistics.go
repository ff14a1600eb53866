package model

type Statistics struct {
	ContractCount           int             `json:"contract_count"`
	CustomerCount           int             `json:"customer_count"`
	EngineerCount           int             `json:"engineer_count"`
	AverageProductQuantity  float64         `json:"average_product_quantity"`
	MaxCostContract         *SupplyContract `json:"max_cost_contract,omitempty"`
	MaxDeliveryTermContract *SupplyContract `json:"max_delivery_term_contract,omitempty"`
}

// Snapshot is a point-in-time copy of the three collections.
type Snapshot struct {
	Contracts      []SupplyContract
	Customers      []Customer
	SalesEngineers []SalesEngineer
}

func (s Snapshot) Empty() bool {
	return len(s.Contracts) == 0 && len(s.Customers) == 0 && len(s.SalesEngineers) == 0
}
