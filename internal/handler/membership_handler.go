package handler

import (
	"net/http"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/service"
	"github.com/alumnihub/alumni-backend/pkg/response"
	"github.com/alumnihub/alumni-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipHandler struct {
	membershipService service.MembershipService
}

func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// Approve records the calling admin's vote on the member's application.
func (h *MembershipHandler) Approve(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ApproveMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	memberID, err := uuid.Parse(input.MemberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member_id must be a valid id"})
		return
	}

	result, err := h.membershipService.Approve(c.Request.Context(), adminID, memberID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	message := "approval recorded"
	if result.Approved {
		message = "member approved"
	}

	c.JSON(http.StatusOK, dto.ApproveMemberResponse{
		Message:         message,
		MemberID:        input.MemberID,
		ApprovalCount:   result.ApprovalCount,
		Approved:        result.Approved,
		ProfileComplete: result.ProfileComplete,
	})
}

func (h *MembershipHandler) Reject(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.RejectMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	memberID, err := uuid.Parse(input.MemberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member_id must be a valid id"})
		return
	}

	if err := h.membershipService.Reject(c.Request.Context(), adminID, memberID, input.Reason); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RejectMemberResponse{
		Message:  "member rejected",
		MemberID: input.MemberID,
	})
}

func (h *MembershipHandler) ListPending(c *gin.Context) {
	var page dto.Pagination
	_ = c.ShouldBindQuery(&page)
	page.Normalize()

	pending, err := h.membershipService.ListPending(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pending})
}
