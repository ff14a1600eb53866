package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/supply-contracts/internal/model"
)

func engineer(enterprise, name string) model.SalesEngineer {
	return model.SalesEngineer{
		Person: model.Person{
			EnterpriseName: enterprise,
			FullName:       name,
			Address:        "Kyiv",
			PhoneNumber:    "+380441234567",
		},
		WorkExperience: 5,
	}
}

func TestNewContractRegistryIsEmpty(t *testing.T) {
	r := NewContractRegistry()

	assert.Empty(t, r.Contracts())
	assert.Empty(t, r.Customers())
	assert.Empty(t, r.SalesEngineers())
	assert.Zero(t, r.AverageProductQuantity())
}

func TestAverageProductQuantity(t *testing.T) {
	r := NewContractRegistry()
	r.AddContract(model.NewSupplyContract(1, "Steel", 100, "30 days", 10))
	r.AddContract(model.NewSupplyContract(2, "Copper", 1, "10 days", 20))
	r.AddContract(model.NewSupplyContract(3, "Tin", 2, "5 days", 30))

	assert.Equal(t, float64(103)/3, r.AverageProductQuantity())
}

func TestMaxQueriesOnEmptyRegistry(t *testing.T) {
	r := NewContractRegistry()

	_, ok := r.MaxCostContract()
	assert.False(t, ok)
	_, ok = r.MaxDeliveryTermContract()
	assert.False(t, ok)

	stats := r.Statistics()
	assert.Nil(t, stats.MaxCostContract)
	assert.Nil(t, stats.MaxDeliveryTermContract)
}

func TestMaxQueriesKeepFirstOnTie(t *testing.T) {
	r := NewContractRegistry()
	r.AddContract(model.NewSupplyContract(1, "Steel", 10, "10 days", 100))
	r.AddContract(model.NewSupplyContract(2, "Copper", 10, "60 days", 500))
	r.AddContract(model.NewSupplyContract(3, "Tin", 10, "60 days", 500))

	byCost, ok := r.MaxCostContract()
	require.True(t, ok)
	assert.Equal(t, 2, byCost.ContractID)

	byTerm, ok := r.MaxDeliveryTermContract()
	require.True(t, ok)
	assert.Equal(t, 2, byTerm.ContractID)
}

func TestMaxQueriesPickDifferentContracts(t *testing.T) {
	r := NewContractRegistry()
	r.AddContract(model.NewSupplyContract(1, "Steel", 10, "90 days", 100))
	r.AddContract(model.NewSupplyContract(2, "Copper", 10, "15 days", 900))

	stats := r.Statistics()
	require.NotNil(t, stats.MaxCostContract)
	require.NotNil(t, stats.MaxDeliveryTermContract)
	assert.Equal(t, 2, stats.MaxCostContract.ContractID)
	assert.Equal(t, 1, stats.MaxDeliveryTermContract.ContractID)
	assert.Equal(t, 2, stats.ContractCount)
}

func TestUniquenessChecks(t *testing.T) {
	r := NewContractRegistry()

	assert.True(t, r.IsContractIDUnique(7))
	r.AddContract(model.NewSupplyContract(7, "Steel", 1, "1 day", 1))
	assert.False(t, r.IsContractIDUnique(7))
	assert.True(t, r.IsContractIDUnique(8))

	assert.True(t, r.IsCustomerContractIDUnique(7))
	r.AddCustomer(model.Customer{Person: model.Person{FullName: "Ivan Petrenko"}, ContractID: 7})
	assert.False(t, r.IsCustomerContractIDUnique(7))

	assert.True(t, r.IsEngineerUnique("Olena Koval", "Metalurg"))
	r.AddSalesEngineer(engineer("Metalurg", "Olena Koval"))
	assert.False(t, r.IsEngineerUnique("olena koval", "METALURG"))
	assert.True(t, r.IsEngineerUnique("Olena Koval", "Other"))
}

func TestAddDoesNotEnforceUniqueness(t *testing.T) {
	r := NewContractRegistry()
	r.AddContract(model.NewSupplyContract(1, "Steel", 1, "1 day", 1))
	r.AddContract(model.NewSupplyContract(1, "Steel", 1, "1 day", 1))

	assert.Len(t, r.Contracts(), 2)
}

func TestSnapshotIsDetached(t *testing.T) {
	r := NewContractRegistry()
	r.AddSalesEngineer(engineer("Metalurg", "Olena Koval"))

	snap := r.Snapshot()
	r.AddSalesEngineer(engineer("Metalurg", "Taras Bondar"))

	assert.Len(t, snap.SalesEngineers, 1)
	assert.Len(t, r.SalesEngineers(), 2)
	assert.False(t, snap.Empty())
	assert.True(t, NewContractRegistry().Snapshot().Empty())
}
