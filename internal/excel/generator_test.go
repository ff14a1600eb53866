package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/supply-contracts/internal/model"
)

func TestGenerateWorkbook(t *testing.T) {
	contract := model.NewSupplyContract(4, "Steel", 100, "30 days", 5000)
	snapshot := model.Snapshot{
		Contracts: []model.SupplyContract{contract},
		Customers: []model.Customer{{
			Person:     model.Person{EnterpriseName: "Budmash", FullName: "Ivan Petrenko", Address: "Kyiv", PhoneNumber: "1"},
			ContractID: 4,
		}},
	}
	stats := model.Statistics{
		ContractCount:           1,
		CustomerCount:           1,
		AverageProductQuantity:  100,
		MaxCostContract:         &contract,
		MaxDeliveryTermContract: &contract,
	}

	content, err := NewGenerator().Generate(snapshot, stats)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{SummarySheet, ContractsSheet, CustomersSheet, EngineersSheet}, file.GetSheetList())

	avg, err := file.GetCellValue(SummarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "100.00", avg)

	maxCost, err := file.GetCellValue(SummarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "№4 Steel, 30 days, 5000.00", maxCost)

	rows, err := file.GetRows(ContractsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"4", "Steel", "100", "30 days", "30", "5000"}, rows[1])

	rows, err = file.GetRows(EngineersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDescribeMissingContract(t *testing.T) {
	assert.Equal(t, "—", describeContract(nil))
}
