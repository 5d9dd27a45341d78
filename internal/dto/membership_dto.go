package dto

import "github.com/alumnihub/alumni-backend/internal/model"

type ApproveMemberInput struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
}

type ApproveMemberResponse struct {
	Message         string `json:"message"`
	MemberID        string `json:"member_id"`
	ApprovalCount   int    `json:"approval_count"`
	Approved        bool   `json:"approved"`
	ProfileComplete bool   `json:"profile_complete"`
}

type RejectMemberInput struct {
	MemberID string  `json:"member_id" binding:"required,uuid"`
	Reason   *string `json:"reason"`
}

type RejectMemberResponse struct {
	Message  string `json:"message"`
	MemberID string `json:"member_id"`
}

type PendingMemberResponse struct {
	Application     *model.MemberApplication `json:"application"`
	ProfileComplete bool                     `json:"profile_complete"`
}
