package dto

type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FullName   string `json:"full_name" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required,oneof=Employee Manager Executive"`
	Department string `json:"department" validate:"required"`
}

type CreateUserResponse struct {
	User UserDTO `json:"user"`
}
