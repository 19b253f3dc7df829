package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/creatorlaunch/internal/onboarding/application"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
)

// OnboardingHandler 入驻接口
type OnboardingHandler struct {
	service *application.OnboardingService
}

func NewOnboardingHandler(service *application.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *OnboardingHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	public := r.Group("/api/v1")
	{
		public.GET("/profiles/:handle", h.GetProfile)
	}

	onboarding := r.Group("/api/v1/onboarding", auth)
	{
		onboarding.POST("/applications", h.Submit)
		onboarding.POST("/applications/complete", h.SubmitComplete)
		onboarding.PUT("/applications", h.Update)
		onboarding.DELETE("/applications", h.Withdraw)
		onboarding.GET("/applications/me", h.GetApplication)
		onboarding.GET("/progress", h.GetProgress)
		onboarding.GET("/profile", h.GetMyProfile)
		onboarding.POST("/documents", h.AttachDocument)
		onboarding.POST("/social-links", h.AttachSocialLink)
		onboarding.DELETE("/social-links/:id", h.RemoveSocialLink)
	}

	admin := r.Group("/api/v1/admin", auth)
	{
		admin.GET("/applications", h.ListApplications)
		admin.POST("/applications/:id/review", h.Review)
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

func (h *OnboardingHandler) Submit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.SubmitCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.Submit(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *OnboardingHandler) SubmitComplete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.SubmitCompleteCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.SubmitComplete(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *OnboardingHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.UpdateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.Update(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OnboardingHandler) Withdraw(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.service.Withdraw(c.Request.Context(), p); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application withdrawn"})
}

func (h *OnboardingHandler) GetApplication(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.GetApplication(c.Request.Context(), p)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OnboardingHandler) GetProgress(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.GetProgress(c.Request.Context(), p)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OnboardingHandler) GetMyProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dto, err := h.service.GetMyProfile(c.Request.Context(), p)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OnboardingHandler) GetProfile(c *gin.Context) {
	dto, err := h.service.GetProfile(c.Request.Context(), c.Param("handle"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OnboardingHandler) AttachDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var payload application.DocumentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.AttachDocument(c.Request.Context(), p, payload)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *OnboardingHandler) AttachSocialLink(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var payload application.SocialLinkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.service.AttachSocialLink(c.Request.Context(), p, payload)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *OnboardingHandler) RemoveSocialLink(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.service.RemoveSocialLink(c.Request.Context(), p, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "social link removed"})
}

func (h *OnboardingHandler) Review(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var cmd application.ReviewCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.ApplicationID = c.Param("id")
	dto, err := h.service.Review(c.Request.Context(), p, cmd)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *OnboardingHandler) ListApplications(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var query struct {
		State string `form:"state"`
		Page  int    `form:"page,default=1"`
		Limit int    `form:"limit,default=20"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, total, err := h.service.ListPending(c.Request.Context(), p, query.State, query.Page, query.Limit)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": query.Page, "limit": query.Limit})
}
