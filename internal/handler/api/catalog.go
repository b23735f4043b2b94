package api

import (
	"net/http"

	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/handler/dto/response"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	commands commands.CatalogCommands
	queries  queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, qrs queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{commands: cmds, queries: qrs}
}

func (h *CatalogHandler) CreateBranch(c *gin.Context) {
	var req reqdto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	view, err := h.commands.CreateBranch(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *CatalogHandler) ListBranches(c *gin.Context) {
	views, err := h.queries.ListBranches(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response.NewBranchListResponse(views))
}

func (h *CatalogHandler) CreateSpace(c *gin.Context) {
	var req reqdto.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	view, err := h.commands.CreateSpace(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *CatalogHandler) GetSpace(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.queries.SpaceByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CatalogHandler) ListSpaces(c *gin.Context) {
	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_FILTER", "invalid branch_id filter")
			return
		}
		branchID = &id
	}
	views, err := h.queries.ListSpaces(c.Request.Context(), branchID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response.NewSpaceListResponse(views))
}

func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var req reqdto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	view, err := h.commands.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.queries.CustomerByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	views, err := h.queries.ListCustomers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response.NewCustomerListResponse(views))
}
