package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/supply-contracts/internal/model"
	"github.com/nurpe/supply-contracts/internal/repository"
)

func newStore(t *testing.T) *TextStore {
	t.Helper()
	return NewTextStore(filepath.Join(t.TempDir(), "data"), zerolog.Nop())
}

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		Contracts: []model.SupplyContract{
			model.NewSupplyContract(1, "Steel", 100, "30 days", 5000.0),
			model.NewSupplyContract(2, "Мідний дріт", 7, "14 днів", 1234.56),
		},
		Customers: []model.Customer{
			{
				Person: model.Person{
					EnterpriseName: "ТОВ Будмаш",
					FullName:       "Іван Петренко",
					Address:        "Київ, вул. Січових Стрільців 1",
					PhoneNumber:    "+380441112233",
				},
				ContractID: 1,
			},
		},
		SalesEngineers: []model.SalesEngineer{
			{
				Person: model.Person{
					EnterpriseName: "Metalurg",
					FullName:       "Olena Koval",
					Address:        "Dnipro",
					PhoneNumber:    "0501234567",
				},
				WorkExperience: 12,
			},
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestSaveThenLoadIntoFreshRegistry(t *testing.T) {
	store := newStore(t)
	snap := sampleSnapshot()
	require.NoError(t, store.Save(snap))

	registry := repository.NewContractRegistry()
	require.NoError(t, store.Load(registry))

	assert.Equal(t, snap.Contracts, registry.Contracts())
	assert.Equal(t, snap.Customers, registry.Customers())
	assert.Equal(t, snap.SalesEngineers, registry.SalesEngineers())
}

func TestSaveSingleContractRoundTrip(t *testing.T) {
	store := newStore(t)
	contract := model.NewSupplyContract(1, "Steel", 100, "30 days", 5000.0)
	require.NoError(t, store.Save(model.Snapshot{Contracts: []model.SupplyContract{contract}}))

	raw, err := os.ReadFile(filepath.Join(store.Dir(), ContractsFile))
	require.NoError(t, err)
	assert.Equal(t, "ID: 1\nТип продукту: Steel\nКількість: 100\nТермін поставки: 30 days\nВартість: 5000.0\n\n", string(raw))

	// empty collections still get their files
	raw, err = os.ReadFile(filepath.Join(store.Dir(), CustomersFile))
	require.NoError(t, err)
	assert.Empty(t, raw)

	registry := repository.NewContractRegistry()
	require.NoError(t, store.Load(registry))
	require.Len(t, registry.Contracts(), 1)
	assert.Equal(t, contract, registry.Contracts()[0])
}

func TestSaveWritesEngineerExperienceSuffix(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(sampleSnapshot()))

	raw, err := os.ReadFile(filepath.Join(store.Dir(), EngineersFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Стаж роботи: 12 років\n")
}

func TestSaveWithNoData(t *testing.T) {
	store := newStore(t)

	err := store.Save(model.Snapshot{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)

	_, statErr := os.Stat(store.Dir())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSaveFailsWhenFileCannotBeCreated(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(store.Dir(), CustomersFile), 0o755))

	err := store.Save(sampleSnapshot())
	assert.ErrorIs(t, err, ErrUnreadableFile)

	// contracts were written before the failure and stay on disk
	_, statErr := os.Stat(filepath.Join(store.Dir(), ContractsFile))
	assert.NoError(t, statErr)
}

func TestLoadMissingDirectory(t *testing.T) {
	store := newStore(t)
	registry := repository.NewContractRegistry()

	err := store.Load(registry)
	assert.ErrorIs(t, err, ErrMissingDirectory)
	assert.Empty(t, registry.Contracts())
	assert.Empty(t, registry.Customers())
	assert.Empty(t, registry.SalesEngineers())
}

func TestLoadMissingFileReadsNothing(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, os.Remove(filepath.Join(store.Dir(), EngineersFile)))

	registry := repository.NewContractRegistry()
	err := store.Load(registry)
	assert.ErrorIs(t, err, ErrUnreadableFile)
	assert.Empty(t, registry.Contracts())
}

func TestLoadTruncatedRecordStopsLoad(t *testing.T) {
	store := newStore(t)
	writeFile(t, store.Dir(), ContractsFile,
		"ID: 1\nТип продукту: Steel\nКількість: 100\nТермін поставки: 30 days\nВартість: 5000.0\n\n"+
			"ID: 2\nТип продукту: Copper\nТермін поставки: 10 days\nВартість: 10.0\n\n")
	writeFile(t, store.Dir(), CustomersFile,
		"ID контракту: 1\nПідприємство: Budmash\nЗамовник: Ivan\nАдреса: Kyiv\nТелефон: 1\n\n")
	writeFile(t, store.Dir(), EngineersFile,
		"Підприємство: Metalurg\nІнженер: Olena\nАдреса: Dnipro\nТелефон: 2\nСтаж роботи: 3 років\n\n")

	registry := repository.NewContractRegistry()
	err := store.Load(registry)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, ContractsFile, storeErr.File)
	assert.Equal(t, 9, storeErr.Line)

	require.Len(t, registry.Contracts(), 1)
	assert.Equal(t, 1, registry.Contracts()[0].ContractID)
	assert.Empty(t, registry.Customers())
	assert.Empty(t, registry.SalesEngineers())
}

func TestLoadRecordCutAtEndOfFile(t *testing.T) {
	store := newStore(t)
	writeFile(t, store.Dir(), ContractsFile, "ID: 1\nТип продукту: Steel\n")
	writeFile(t, store.Dir(), CustomersFile, "")
	writeFile(t, store.Dir(), EngineersFile, "")

	err := store.Load(repository.NewContractRegistry())
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestLoadMalformedNumber(t *testing.T) {
	store := newStore(t)
	writeFile(t, store.Dir(), ContractsFile, "")
	writeFile(t, store.Dir(), CustomersFile, "")
	writeFile(t, store.Dir(), EngineersFile,
		"Підприємство: Metalurg\nІнженер: Olena\nАдреса: Dnipro\nТелефон: 2\nСтаж роботи: багато років\n\n")

	registry := repository.NewContractRegistry()
	err := store.Load(registry)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Empty(t, registry.SalesEngineers())
}

func TestLoadAppendsOntoExistingState(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(sampleSnapshot()))

	registry := repository.NewContractRegistry()
	require.NoError(t, store.Load(registry))
	require.NoError(t, store.Load(registry))

	assert.Len(t, registry.Contracts(), 4)
	assert.Len(t, registry.Customers(), 2)
	assert.Len(t, registry.SalesEngineers(), 2)
	assert.Equal(t, registry.Contracts()[0], registry.Contracts()[2])
}

func TestLoadSkipsLinesOutsideBlocks(t *testing.T) {
	store := newStore(t)
	writeFile(t, store.Dir(), ContractsFile,
		"# exported by hand\n\nID: 3\nТип продукту: Tin\nКількість: 5\nТермін поставки: 2 days\nВартість: 1.5\n")
	writeFile(t, store.Dir(), CustomersFile, "")
	writeFile(t, store.Dir(), EngineersFile, "")

	registry := repository.NewContractRegistry()
	require.NoError(t, store.Load(registry))
	require.Len(t, registry.Contracts(), 1)
	assert.Equal(t, 1.5, registry.Contracts()[0].Cost)
	assert.Equal(t, 2, registry.Contracts()[0].DeliveryTermInDays)
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "5000.0", FormatCost(5000))
	assert.Equal(t, "12.25", FormatCost(12.25))
	assert.Equal(t, "0.1", FormatCost(0.1))
	assert.Equal(t, "-3.0", FormatCost(-3))
}

func TestLoadValuesLongerThanScannerBuffer(t *testing.T) {
	store := newStore(t)
	product := strings.Repeat("x", 70000)
	contract := model.NewSupplyContract(1, product, 3, "30 days", 10)
	engineer := model.SalesEngineer{
		Person:         model.Person{EnterpriseName: "Metalurg", FullName: "Olena", Address: strings.Repeat("вул. ", 20000), PhoneNumber: "1"},
		WorkExperience: 2,
	}
	require.NoError(t, store.Save(model.Snapshot{
		Contracts:      []model.SupplyContract{contract},
		SalesEngineers: []model.SalesEngineer{engineer},
	}))

	registry := repository.NewContractRegistry()
	require.NoError(t, store.Load(registry))
	assert.Equal(t, []model.SupplyContract{contract}, registry.Contracts())
	engineer.Address = strings.TrimSpace(engineer.Address)
	assert.Equal(t, []model.SalesEngineer{engineer}, registry.SalesEngineers())
}

func TestLoadAcceptsCRLFLines(t *testing.T) {
	store := newStore(t)
	writeFile(t, store.Dir(), ContractsFile,
		"ID: 5\r\nТип продукту: Tin\r\nКількість: 5\r\nТермін поставки: 2 days\r\nВартість: 1.5\r\n\r\n")
	writeFile(t, store.Dir(), CustomersFile, "")
	writeFile(t, store.Dir(), EngineersFile, "")

	registry := repository.NewContractRegistry()
	require.NoError(t, store.Load(registry))
	require.Len(t, registry.Contracts(), 1)
	assert.Equal(t, "2 days", registry.Contracts()[0].DeliveryTerm)
}

func TestReadBlocksReportsReadFailureInsideBlock(t *testing.T) {
	r := io.MultiReader(
		strings.NewReader("ID: 1\nТип продукту: Steel\n"),
		iotest.ErrReader(errors.New("device gone")),
	)

	err := readBlocks(r, contractFormat, func([]string) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableFile)
	assert.NotErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "device gone")
}

func TestReadBlocksReportsReadFailureBetweenBlocks(t *testing.T) {
	r := io.MultiReader(strings.NewReader("# header\n"), iotest.ErrReader(errors.New("device gone")))

	err := readBlocks(r, contractFormat, func([]string) error { return nil })
	assert.ErrorIs(t, err, ErrUnreadableFile)
}
