package model

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=6"`
	Name           string  `json:"name" binding:"required"`
	Role           string  `json:"role" binding:"omitempty,oneof=admin doctor"`
	Specialization *string `json:"specialization"`
	Phone          *string `json:"phone"`
}

type TokenResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
