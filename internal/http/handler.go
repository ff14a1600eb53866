package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/supply-contracts/internal/service"
	"github.com/nurpe/supply-contracts/internal/storage"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type Handler struct {
	contracts *service.ContractService
	log       zerolog.Logger
}

func NewHandler(contracts *service.ContractService, log zerolog.Logger) *Handler {
	return &Handler{contracts: contracts, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)

	router.GET("/contracts", h.listContracts)
	router.GET("/customers", h.listCustomers)
	router.GET("/engineers", h.listEngineers)
	router.GET("/statistics", h.statistics)
	router.GET("/export/excel", h.exportExcel)
	router.GET("/export/pdf", h.exportPDF)

	protected := router.Group("/")
	if authMiddleware != nil {
		protected.Use(authMiddleware)
	}
	protected.POST("/contracts", h.addContract)
	protected.POST("/customers", h.addCustomer)
	protected.POST("/engineers", h.addEngineer)
	protected.POST("/data/save", h.saveData)
	protected.POST("/data/load", h.loadData)
	protected.POST("/archive", h.archive)
	protected.GET("/archive", h.listArchives)
}

type addContractRequest struct {
	ContractID   int     `json:"contract_id" binding:"required"`
	ProductType  string  `json:"product_type" binding:"required"`
	Quantity     int     `json:"quantity"`
	DeliveryTerm string  `json:"delivery_term" binding:"required"`
	Cost         float64 `json:"cost"`
}

type personRequest struct {
	EnterpriseName string `json:"enterprise_name" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Address        string `json:"address" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
}

type addCustomerRequest struct {
	personRequest
	ContractID int `json:"contract_id" binding:"required"`
}

type addEngineerRequest struct {
	personRequest
	WorkExperience int `json:"work_experience"`
}

func (r personRequest) input() service.PersonInput {
	return service.PersonInput{
		EnterpriseName: r.EnterpriseName,
		FullName:       r.FullName,
		Address:        r.Address,
		PhoneNumber:    r.PhoneNumber,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listContracts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.contracts.Contracts()})
}

func (h *Handler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.contracts.Customers()})
}

func (h *Handler) listEngineers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.contracts.SalesEngineers()})
}

func (h *Handler) statistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.contracts.Statistics()})
}

func (h *Handler) addContract(c *gin.Context) {
	var req addContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.contracts.AddContract(service.ContractInput{
		ContractID:   req.ContractID,
		ProductType:  req.ProductType,
		Quantity:     req.Quantity,
		DeliveryTerm: req.DeliveryTerm,
		Cost:         req.Cost,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": contract})
}

func (h *Handler) addCustomer(c *gin.Context) {
	var req addCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.contracts.AddCustomer(service.CustomerInput{
		PersonInput: req.input(),
		ContractID:  req.ContractID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": customer})
}

func (h *Handler) addEngineer(c *gin.Context) {
	var req addEngineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engineer, err := h.contracts.AddSalesEngineer(service.EngineerInput{
		PersonInput:    req.input(),
		WorkExperience: req.WorkExperience,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": engineer})
}

func (h *Handler) saveData(c *gin.Context) {
	notice, err := h.contracts.Save()
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, storage.ErrUnreadableFile) {
			h.log.Error().Err(err).Msg("save data failed")
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error(), "notice": notice})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notice": notice})
}

func (h *Handler) loadData(c *gin.Context) {
	notice, err := h.contracts.Load()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "notice": notice})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notice": notice, "data": h.contracts.Statistics()})
}

func (h *Handler) exportExcel(c *gin.Context) {
	result, err := h.contracts.ExportExcel()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	result, err := h.contracts.ExportPDF()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, pdfContentType, result.Content)
}

func (h *Handler) archive(c *gin.Context) {
	entry, err := h.contracts.Archive(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": entry})
}

func (h *Handler) listArchives(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.contracts.ListArchives(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, storage.ErrMissingDirectory), errors.Is(err, storage.ErrUnreadableFile):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrNoData), errors.Is(err, storage.ErrMalformedRecord):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
