package repository

import (
	"strings"

	"github.com/nurpe/supply-contracts/internal/model"
)

// ContractRegistry keeps engineers, customers and contracts in insertion order.
// It is not safe for concurrent use; callers serialize access.
type ContractRegistry struct {
	engineers []model.SalesEngineer
	customers []model.Customer
	contracts []model.SupplyContract
}

func NewContractRegistry() *ContractRegistry {
	return &ContractRegistry{
		engineers: []model.SalesEngineer{},
		customers: []model.Customer{},
		contracts: []model.SupplyContract{},
	}
}

func (r *ContractRegistry) AddSalesEngineer(engineer model.SalesEngineer) {
	r.engineers = append(r.engineers, engineer)
}

func (r *ContractRegistry) AddCustomer(customer model.Customer) {
	r.customers = append(r.customers, customer)
}

func (r *ContractRegistry) AddContract(contract model.SupplyContract) {
	r.contracts = append(r.contracts, contract)
}

func (r *ContractRegistry) SalesEngineers() []model.SalesEngineer {
	return r.engineers
}

func (r *ContractRegistry) Customers() []model.Customer {
	return r.customers
}

func (r *ContractRegistry) Contracts() []model.SupplyContract {
	return r.contracts
}

// Snapshot copies the collections so the result survives later appends.
func (r *ContractRegistry) Snapshot() model.Snapshot {
	return model.Snapshot{
		Contracts:      append([]model.SupplyContract(nil), r.contracts...),
		Customers:      append([]model.Customer(nil), r.customers...),
		SalesEngineers: append([]model.SalesEngineer(nil), r.engineers...),
	}
}

func (r *ContractRegistry) AverageProductQuantity() float64 {
	if len(r.contracts) == 0 {
		return 0
	}
	total := 0
	for _, contract := range r.contracts {
		total += contract.Quantity
	}
	return float64(total) / float64(len(r.contracts))
}

// MaxCostContract returns the first contract with the highest cost.
func (r *ContractRegistry) MaxCostContract() (model.SupplyContract, bool) {
	return maxContract(r.contracts, func(a, b model.SupplyContract) bool {
		return a.Cost > b.Cost
	})
}

// MaxDeliveryTermContract returns the first contract with the longest delivery term in days.
func (r *ContractRegistry) MaxDeliveryTermContract() (model.SupplyContract, bool) {
	return maxContract(r.contracts, func(a, b model.SupplyContract) bool {
		return a.DeliveryTermInDays > b.DeliveryTermInDays
	})
}

func (r *ContractRegistry) IsContractIDUnique(contractID int) bool {
	for _, contract := range r.contracts {
		if contract.ContractID == contractID {
			return false
		}
	}
	return true
}

func (r *ContractRegistry) IsCustomerContractIDUnique(contractID int) bool {
	for _, customer := range r.customers {
		if customer.ContractID == contractID {
			return false
		}
	}
	return true
}

func (r *ContractRegistry) IsEngineerUnique(fullName, enterpriseName string) bool {
	for _, engineer := range r.engineers {
		if strings.EqualFold(engineer.FullName, fullName) &&
			strings.EqualFold(engineer.EnterpriseName, enterpriseName) {
			return false
		}
	}
	return true
}

func (r *ContractRegistry) Statistics() model.Statistics {
	stats := model.Statistics{
		ContractCount:          len(r.contracts),
		CustomerCount:          len(r.customers),
		EngineerCount:          len(r.engineers),
		AverageProductQuantity: r.AverageProductQuantity(),
	}
	if contract, ok := r.MaxCostContract(); ok {
		stats.MaxCostContract = &contract
	}
	if contract, ok := r.MaxDeliveryTermContract(); ok {
		stats.MaxDeliveryTermContract = &contract
	}
	return stats
}

// maxContract keeps the earliest element on ties: greater must be strict.
func maxContract(contracts []model.SupplyContract, greater func(a, b model.SupplyContract) bool) (model.SupplyContract, bool) {
	if len(contracts) == 0 {
		return model.SupplyContract{}, false
	}
	best := contracts[0]
	for _, contract := range contracts[1:] {
		if greater(contract, best) {
			best = contract
		}
	}
	return best, true
}
