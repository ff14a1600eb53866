package model

// Person holds the contact fields shared by customers and sales engineers.
type Person struct {
	EnterpriseName string `json:"enterprise_name"`
	FullName       string `json:"full_name"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phone_number"`
}

type SalesEngineer struct {
	Person
	WorkExperience int `json:"work_experience"` // years
}

type Customer struct {
	Person
	ContractID int `json:"contract_id"` // expected to reference a SupplyContract, not checked
}
