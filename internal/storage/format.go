package storage

import (
	"math"
	"strconv"
	"strings"

	"github.com/nurpe/supply-contracts/internal/model"
)

const (
	ContractsFile = "contracts.txt"
	CustomersFile = "customers.txt"
	EngineersFile = "sales_engineers.txt"

	experienceSuffix = " років"
)

// recordFormat describes one file: the labels of a block in the order they are written.
type recordFormat struct {
	file   string
	labels []string
}

var (
	contractFormat = recordFormat{
		file:   ContractsFile,
		labels: []string{"ID", "Тип продукту", "Кількість", "Термін поставки", "Вартість"},
	}
	customerFormat = recordFormat{
		file:   CustomersFile,
		labels: []string{"ID контракту", "Підприємство", "Замовник", "Адреса", "Телефон"},
	}
	engineerFormat = recordFormat{
		file:   EngineersFile,
		labels: []string{"Підприємство", "Інженер", "Адреса", "Телефон", "Стаж роботи"},
	}
)

func encodeContract(c model.SupplyContract) []string {
	return []string{
		strconv.Itoa(c.ContractID),
		c.ProductType,
		strconv.Itoa(c.Quantity),
		c.DeliveryTerm,
		FormatCost(c.Cost),
	}
}

func decodeContract(values []string) (model.SupplyContract, error) {
	id, err := strconv.Atoi(values[0])
	if err != nil {
		return model.SupplyContract{}, err
	}
	quantity, err := strconv.Atoi(values[2])
	if err != nil {
		return model.SupplyContract{}, err
	}
	cost, err := strconv.ParseFloat(values[4], 64)
	if err != nil {
		return model.SupplyContract{}, err
	}
	return model.NewSupplyContract(id, values[1], quantity, values[3], cost), nil
}

func encodeCustomer(c model.Customer) []string {
	return []string{
		strconv.Itoa(c.ContractID),
		c.EnterpriseName,
		c.FullName,
		c.Address,
		c.PhoneNumber,
	}
}

func decodeCustomer(values []string) (model.Customer, error) {
	id, err := strconv.Atoi(values[0])
	if err != nil {
		return model.Customer{}, err
	}
	return model.Customer{
		Person: model.Person{
			EnterpriseName: values[1],
			FullName:       values[2],
			Address:        values[3],
			PhoneNumber:    values[4],
		},
		ContractID: id,
	}, nil
}

func encodeEngineer(e model.SalesEngineer) []string {
	return []string{
		e.EnterpriseName,
		e.FullName,
		e.Address,
		e.PhoneNumber,
		strconv.Itoa(e.WorkExperience) + experienceSuffix,
	}
}

func decodeEngineer(values []string) (model.SalesEngineer, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(values[4], experienceSuffix, ""))
	years, err := strconv.Atoi(raw)
	if err != nil {
		return model.SalesEngineer{}, err
	}
	return model.SalesEngineer{
		Person: model.Person{
			EnterpriseName: values[0],
			FullName:       values[1],
			Address:        values[2],
			PhoneNumber:    values[3],
		},
		WorkExperience: years,
	}, nil
}

// FormatCost renders the shortest decimal that parses back to the same value,
// always with a fractional part: 5000 -> "5000.0", 12.25 -> "12.25".
func FormatCost(cost float64) string {
	s := strconv.FormatFloat(cost, 'f', -1, 64)
	if math.IsInf(cost, 0) || math.IsNaN(cost) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
