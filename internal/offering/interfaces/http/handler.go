package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/creatorlaunch/internal/offering/application"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
)

// OfferingHandler 发行接口
type OfferingHandler struct {
	service *application.OfferingService
}

func NewOfferingHandler(service *application.OfferingService) *OfferingHandler {
	return &OfferingHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *OfferingHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	public := r.Group("/api/v1/offerings")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
		public.GET("/:id/updates", h.ListUpdates)
	}

	owner := r.Group("/api/v1/offerings", auth)
	{
		owner.POST("", h.Create)
		owner.GET("/me/mine", h.GetMine)
		owner.PUT("/:id", h.Update)
		owner.DELETE("/:id", h.Delete)
		owner.POST("/:id/submit", h.SubmitForReview)
		owner.POST("/:id/launch", h.Launch)
		owner.POST("/:id/cancel", h.Cancel)
		owner.POST("/:id/updates", h.CreateUpdate)
	}

	admin := r.Group("/api/v1/admin/offerings", auth)
	{
		admin.POST("/:id/review", h.Review)
		admin.POST("/:id/close", h.Close)
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

func (h *OfferingHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.OfferingCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.Create(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *OfferingHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.OfferingCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.Update(c.Request.Context(), p, c.Param("id"), cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) SubmitForReview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.SubmitForReview(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) Launch(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.Launch(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) Cancel(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.Cancel(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offering deleted"})
}

func (h *OfferingHandler) Review(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.ReviewCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.OfferingID = c.Param("id")
	dto, err := h.service.Review(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) Close(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.CloseCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.OfferingID = c.Param("id")
	dto, err := h.service.Close(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) CreateUpdate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.UpdatePostCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.OfferingID = c.Param("id")
	dto, err := h.service.CreateUpdate(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *OfferingHandler) Get(c *gin.Context) {
	dto, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) GetMine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.GetMine(c.Request.Context(), p)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OfferingHandler) List(c *gin.Context) {
	var query application.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": query.Page, "limit": query.Limit})
}

func (h *OfferingHandler) ListUpdates(c *gin.Context) {
	items, err := h.service.ListUpdates(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
