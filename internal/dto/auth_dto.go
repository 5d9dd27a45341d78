package dto

import "github.com/alumnihub/alumni-backend/internal/model"

type RegisterInput struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	FullName string `json:"full_name" form:"full_name" binding:"required"`
}

type RegisterResponse struct {
	User        *model.User              `json:"user"`
	Application *model.MemberApplication `json:"application"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
