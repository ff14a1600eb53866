package model

import (
	"strconv"
	"strings"
	"unicode"
)

type SupplyContract struct {
	ContractID         int     `json:"contract_id"`
	ProductType        string  `json:"product_type"`
	Quantity           int     `json:"quantity"`
	DeliveryTerm       string  `json:"delivery_term"`
	DeliveryTermInDays int     `json:"delivery_term_in_days"`
	Cost               float64 `json:"cost"`
}

// NewSupplyContract derives DeliveryTermInDays from the display term, so a
// contract read back from its text form compares equal to the one written.
func NewSupplyContract(contractID int, productType string, quantity int, deliveryTerm string, cost float64) SupplyContract {
	return SupplyContract{
		ContractID:         contractID,
		ProductType:        productType,
		Quantity:           quantity,
		DeliveryTerm:       deliveryTerm,
		DeliveryTermInDays: DeliveryDays(deliveryTerm),
		Cost:               cost,
	}
}

// DeliveryDays returns the leading number of a term such as "30 днів" or "30 days".
// Terms without a leading number count as 0 days.
func DeliveryDays(term string) int {
	term = strings.TrimSpace(term)
	end := strings.IndexFunc(term, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(term)
	}
	days, err := strconv.Atoi(term[:end])
	if err != nil {
		return 0
	}
	return days
}
