package handler

import (
	"net/http"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/service"
	"github.com/alumnihub/alumni-backend/pkg/response"
	"github.com/alumnihub/alumni-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var input dto.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	msg, err := h.contactService.SubmitMessage(c.Request.Context(), c.ClientIP(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "thanks for reaching out", "id": msg.ID})
}

func (h *ContactHandler) ListMessages(c *gin.Context) {
	var page dto.Pagination
	_ = c.ShouldBindQuery(&page)
	page.Normalize()

	msgs, err := h.contactService.ListMessages(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

func (h *ContactHandler) Subscribe(c *gin.Context) {
	var input dto.NewsletterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.contactService.Subscribe(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscribed"})
}
