package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/supply-contracts/internal/model"
)

const (
	SummarySheet   = "Статистика"
	ContractsSheet = "Контракти"
	CustomersSheet = "Замовники"
	EngineersSheet = "Інженери"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(snapshot model.Snapshot, stats model.Statistics) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, SummarySheet, stats)

	for _, sheet := range []string{ContractsSheet, CustomersSheet, EngineersSheet} {
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	g.writeContracts(file, ContractsSheet, snapshot.Contracts)
	g.writeCustomers(file, CustomersSheet, snapshot.Customers)
	g.writeEngineers(file, EngineersSheet, snapshot.SalesEngineers)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, stats model.Statistics) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Кількість контрактів")
	set("B1", stats.ContractCount)
	set("A2", "Кількість замовників")
	set("B2", stats.CustomerCount)
	set("A3", "Кількість інженерів")
	set("B3", stats.EngineerCount)
	set("A4", "Середня кількість продукції")
	set("B4", formatFloat(stats.AverageProductQuantity))
	set("A5", "Найдорожчий контракт")
	set("B5", describeContract(stats.MaxCostContract))
	set("A6", "Найдовший термін поставки")
	set("B6", describeContract(stats.MaxDeliveryTermContract))

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "B", 48)
}

func (g *Generator) writeContracts(file *excelize.File, sheet string, contracts []model.SupplyContract) {
	writeHeader(file, sheet, []string{"ID", "Тип продукту", "Кількість", "Термін поставки", "Днів", "Вартість"})
	for i, c := range contracts {
		writeRow(file, sheet, i+2, c.ContractID, c.ProductType, c.Quantity, c.DeliveryTerm, c.DeliveryTermInDays, c.Cost)
	}
	_ = file.SetColWidth(sheet, "A", "A", 8)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "C", 12)
	_ = file.SetColWidth(sheet, "D", "D", 20)
	_ = file.SetColWidth(sheet, "E", "F", 12)
}

func (g *Generator) writeCustomers(file *excelize.File, sheet string, customers []model.Customer) {
	writeHeader(file, sheet, []string{"ID контракту", "Підприємство", "Замовник", "Адреса", "Телефон"})
	for i, c := range customers {
		writeRow(file, sheet, i+2, c.ContractID, c.EnterpriseName, c.FullName, c.Address, c.PhoneNumber)
	}
	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "D", 32)
	_ = file.SetColWidth(sheet, "E", "E", 18)
}

func (g *Generator) writeEngineers(file *excelize.File, sheet string, engineers []model.SalesEngineer) {
	writeHeader(file, sheet, []string{"Підприємство", "Інженер", "Адреса", "Телефон", "Стаж роботи, років"})
	for i, e := range engineers {
		writeRow(file, sheet, i+2, e.EnterpriseName, e.FullName, e.Address, e.PhoneNumber, e.WorkExperience)
	}
	_ = file.SetColWidth(sheet, "A", "C", 32)
	_ = file.SetColWidth(sheet, "D", "D", 18)
	_ = file.SetColWidth(sheet, "E", "E", 20)
}

func writeHeader(file *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}
}

func writeRow(file *excelize.File, sheet string, row int, values ...interface{}) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = file.SetCellValue(sheet, cell, value)
	}
}

func describeContract(c *model.SupplyContract) string {
	if c == nil {
		return "—"
	}
	return fmt.Sprintf("№%d %s, %s, %s", c.ContractID, c.ProductType, c.DeliveryTerm, formatFloat(c.Cost))
}

func formatFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
