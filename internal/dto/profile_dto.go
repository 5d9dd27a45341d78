package dto

import (
	"io"

	"github.com/alumnihub/alumni-backend/internal/model"
)

type UpdateProfileInput struct {
	FullName      *string `json:"full_name" form:"full_name"`
	Nickname      *string `json:"nickname" form:"nickname"`
	Department    *string `json:"department" form:"department"`
	Hall          *string `json:"hall" form:"hall"`
	ContactNumber *string `json:"contact_number" form:"contact_number"`
	BloodGroup    *string `json:"blood_group" form:"blood_group"`
	Address       *string `json:"address" form:"address"`
	Profession    *string `json:"profession" form:"profession"`
	Bio           *string `json:"bio" form:"bio"`
}

type ProfileResponse struct {
	User            *model.User    `json:"user"`
	Profile         *model.Profile `json:"profile"`
	ProfileComplete bool           `json:"profile_complete"`
}

// UploadFile carries a multipart upload from handler to service.
type UploadFile struct {
	Reader   io.Reader
	FileName string
	MimeType string
}
