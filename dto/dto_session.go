package dto

type StartSessionReq struct {
	SessionType string `json:"session_type" validate:"required"`
	Year        int    `json:"year" validate:"required,min=2000,max=2100"`
}

type LogActivityReq struct {
	Type        string         `json:"type" validate:"required,max=60"`
	Description string         `json:"description" validate:"required,max=500"`
	Details     map[string]any `json:"details"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
