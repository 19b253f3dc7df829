package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/creatorlaunch/internal/investment/application"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
)

// InvestmentHandler 投资接口
type InvestmentHandler struct {
	service *application.InvestmentService
}

func NewInvestmentHandler(service *application.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *InvestmentHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	investments := r.Group("/api/v1/investments", auth)
	{
		investments.POST("", h.Invest)
		investments.GET("", h.MyInvestments)
		investments.GET("/:id", h.Get)
		investments.POST("/:id/claim", h.Claim)
	}

	offerings := r.Group("/api/v1/offerings", auth)
	{
		offerings.GET("/:id/investments", h.OfferingInvestments)
	}

	admin := r.Group("/api/v1/admin/investments", auth)
	{
		admin.POST("/:id/settle", h.Settle)
	}
}

func principal(c *gin.Context) (middleware.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return p, ok
}

func renderError(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
}

func (h *InvestmentHandler) Invest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.InvestCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.Invest(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *InvestmentHandler) Settle(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.SettleCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.InvestmentID = c.Param("id")
	dto, err := h.service.Settle(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) Claim(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.Claim(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.GetInvestment(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) MyInvestments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.service.MyInvestments(c.Request.Context(), p)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InvestmentHandler) OfferingInvestments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.service.OfferingInvestments(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
