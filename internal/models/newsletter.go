package models

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
