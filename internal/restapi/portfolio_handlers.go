package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/service"
)

// APIPortfolioResponse wraps the portfolio snapshot for the dashboard.
type APIPortfolioResponse struct {
	Data struct {
		Portfolio *entity.PortfolioView `json:"portfolio"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIAccountsResponse lists the tracked accounts.
type APIAccountsResponse struct {
	Data struct {
		Accounts []entity.TrackedAccount `json:"accounts"`
	} `json:"data"`
}

// PortfolioHandler serves the read-only dashboard endpoints.
type PortfolioHandler struct {
	queryService *service.QueryService
}

// NewPortfolioHandler creates the handler over the query service.
func NewPortfolioHandler(qs *service.QueryService) *PortfolioHandler {
	return &PortfolioHandler{queryService: qs}
}

// GetPortfolioHandler runs a full query cycle and returns the aggregated
// snapshot. Per-account failures ride along inside the view; only a
// configuration error turns into a 500.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	view, err := h.queryService.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := APIPortfolioResponse{}
	response.Data.Portfolio = view
	switch {
	case view.Queried == 0:
		response.StatusMessage = "No tracked accounts. Add one with the CLI first."
	case len(view.Failures) > 0 && view.Succeeded == 0:
		response.StatusMessage = "Every account query failed."
	case len(view.Failures) > 0:
		response.StatusMessage = "Portfolio retrieved. Some accounts failed."
	default:
		response.StatusMessage = "Portfolio retrieved successfully."
	}
	c.JSON(http.StatusOK, response)
}

// GetAccountsHandler returns the address book contents.
func (h *PortfolioHandler) GetAccountsHandler(c *gin.Context) {
	accounts, err := h.queryService.Accounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response := APIAccountsResponse{}
	response.Data.Accounts = accounts
	c.JSON(http.StatusOK, response)
}
