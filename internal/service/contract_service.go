package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/supply-contracts/internal/model"
	"github.com/nurpe/supply-contracts/internal/repository"
	"github.com/nurpe/supply-contracts/internal/storage"
)

type Store interface {
	Save(snapshot model.Snapshot) error
	Load(sink storage.Sink) error
}

type ReportGenerator interface {
	Generate(snapshot model.Snapshot, stats model.Statistics) ([]byte, error)
}

type Archiver interface {
	SaveSnapshot(ctx context.Context, snapshot model.Snapshot) (*model.ArchiveEntry, error)
	ListSnapshots(ctx context.Context, limit int) ([]model.ArchiveEntry, error)
}

// ContractService serializes access to the registry; the registry itself is not synchronized.
type ContractService struct {
	mu       sync.Mutex
	registry *repository.ContractRegistry
	store    Store
	excel    ReportGenerator
	pdf      ReportGenerator
	archive  Archiver
	log      zerolog.Logger
	now      func() time.Time
}

// NewContractService wires the service. archive may be nil when no database is configured.
func NewContractService(
	registry *repository.ContractRegistry,
	store Store,
	excel ReportGenerator,
	pdf ReportGenerator,
	archive Archiver,
	log zerolog.Logger,
) *ContractService {
	return &ContractService{
		registry: registry,
		store:    store,
		excel:    excel,
		pdf:      pdf,
		archive:  archive,
		log:      log,
		now:      time.Now,
	}
}

type ContractInput struct {
	ContractID   int
	ProductType  string
	Quantity     int
	DeliveryTerm string
	Cost         float64
}

type PersonInput struct {
	EnterpriseName string
	FullName       string
	Address        string
	PhoneNumber    string
}

type CustomerInput struct {
	PersonInput
	ContractID int
}

type EngineerInput struct {
	PersonInput
	WorkExperience int
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *ContractService) AddContract(input ContractInput) (model.SupplyContract, error) {
	productType, err := textField("product_type", input.ProductType)
	if err != nil {
		return model.SupplyContract{}, err
	}
	term, err := textField("delivery_term", input.DeliveryTerm)
	if err != nil {
		return model.SupplyContract{}, err
	}
	switch {
	case input.ContractID <= 0:
		return model.SupplyContract{}, fmt.Errorf("%w: contract_id must be positive", ErrInvalidInput)
	case input.Quantity < 0:
		return model.SupplyContract{}, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	case input.Cost < 0 || math.IsNaN(input.Cost) || math.IsInf(input.Cost, 0):
		return model.SupplyContract{}, fmt.Errorf("%w: cost must be a non-negative number", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.IsContractIDUnique(input.ContractID) {
		return model.SupplyContract{}, fmt.Errorf("%w: contract %d", ErrConflict, input.ContractID)
	}
	contract := model.NewSupplyContract(input.ContractID, productType, input.Quantity, term, input.Cost)
	s.registry.AddContract(contract)
	s.log.Info().Int("contract_id", contract.ContractID).Msg("contract added")
	return contract, nil
}

func (s *ContractService) AddCustomer(input CustomerInput) (model.Customer, error) {
	person, err := input.PersonInput.normalize()
	if err != nil {
		return model.Customer{}, err
	}
	if input.ContractID <= 0 {
		return model.Customer{}, fmt.Errorf("%w: contract_id must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.IsCustomerContractIDUnique(input.ContractID) {
		return model.Customer{}, fmt.Errorf("%w: customer for contract %d", ErrConflict, input.ContractID)
	}
	if s.registry.IsContractIDUnique(input.ContractID) {
		s.log.Warn().Int("contract_id", input.ContractID).Msg("customer references unknown contract")
	}
	customer := model.Customer{Person: person, ContractID: input.ContractID}
	s.registry.AddCustomer(customer)
	s.log.Info().Int("contract_id", customer.ContractID).Msg("customer added")
	return customer, nil
}

func (s *ContractService) AddSalesEngineer(input EngineerInput) (model.SalesEngineer, error) {
	person, err := input.PersonInput.normalize()
	if err != nil {
		return model.SalesEngineer{}, err
	}
	if input.WorkExperience < 0 {
		return model.SalesEngineer{}, fmt.Errorf("%w: work_experience must not be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.IsEngineerUnique(person.FullName, person.EnterpriseName) {
		return model.SalesEngineer{}, fmt.Errorf("%w: engineer %s at %s", ErrConflict, person.FullName, person.EnterpriseName)
	}
	engineer := model.SalesEngineer{Person: person, WorkExperience: input.WorkExperience}
	s.registry.AddSalesEngineer(engineer)
	s.log.Info().Str("full_name", engineer.FullName).Msg("sales engineer added")
	return engineer, nil
}

func (s *ContractService) Contracts() []model.SupplyContract {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshot().Contracts
}

func (s *ContractService) Customers() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshot().Customers
}

func (s *ContractService) SalesEngineers() []model.SalesEngineer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshot().SalesEngineers
}

func (s *ContractService) Statistics() model.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Statistics()
}

// Save writes the current state to the text store. The notice is always set,
// the error only when nothing or not everything was written. The lock is held
// for the whole write so saves and loads never see each other's partial files.
func (s *ContractService) Save() (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Save(s.registry.Snapshot())
	if err != nil {
		s.log.Warn().Err(err).Msg("save data failed")
	}
	return saveNotice(err), err
}

// Load appends the stored records to the current state; loading twice duplicates them.
func (s *ContractService) Load() (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Load(s.registry)
	if err != nil {
		s.log.Warn().Err(err).Msg("load data failed")
	}
	return loadNotice(err), err
}

func (s *ContractService) ExportExcel() (*ExportResult, error) {
	snapshot, stats := s.view()
	content, err := s.excel.Generate(snapshot, stats)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: s.buildFileName("xlsx"), Content: content}, nil
}

func (s *ContractService) ExportPDF() (*ExportResult, error) {
	snapshot, stats := s.view()
	content, err := s.pdf.Generate(snapshot, stats)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: s.buildFileName("pdf"), Content: content}, nil
}

func (s *ContractService) Archive(ctx context.Context) (*model.ArchiveEntry, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	snapshot, _ := s.view()
	entry, err := s.archive.SaveSnapshot(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("snapshot_id", entry.ID.String()).Msg("state archived")
	return entry, nil
}

func (s *ContractService) ListArchives(ctx context.Context, limit int) ([]model.ArchiveEntry, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.ListSnapshots(ctx, limit)
}

func (s *ContractService) view() (model.Snapshot, model.Statistics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshot(), s.registry.Statistics()
}

func (s *ContractService) buildFileName(ext string) string {
	return fmt.Sprintf("supply-contracts-%s.%s", s.now().Format("20060102"), ext)
}

func (p PersonInput) normalize() (model.Person, error) {
	enterprise, err := textField("enterprise_name", p.EnterpriseName)
	if err != nil {
		return model.Person{}, err
	}
	fullName, err := textField("full_name", p.FullName)
	if err != nil {
		return model.Person{}, err
	}
	address, err := textField("address", p.Address)
	if err != nil {
		return model.Person{}, err
	}
	phone, err := textField("phone_number", p.PhoneNumber)
	if err != nil {
		return model.Person{}, err
	}
	return model.Person{
		EnterpriseName: enterprise,
		FullName:       fullName,
		Address:        address,
		PhoneNumber:    phone,
	}, nil
}

// textField trims the value and rejects what the line-based file format cannot hold.
func textField(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	if strings.ContainsAny(value, "\r\n") {
		return "", fmt.Errorf("%w: %s must be a single line", ErrInvalidInput, name)
	}
	return value, nil
}
