package handler

type registerRequest struct {
	Email          string `json:"email"          validate:"required,email"`
	Password       string `json:"password"       validate:"required,min=6"`
	FullName       string `json:"full_name"      validate:"required"`
	Role           string `json:"role"           validate:"required,oneof=patient doctor admin"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileUpdateRequest struct {
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Department     string `json:"department"`
}
