package models

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	// ChallengeToken is the Turnstile widget response, checked when enabled.
	ChallengeToken string `json:"challengeToken"`
}
