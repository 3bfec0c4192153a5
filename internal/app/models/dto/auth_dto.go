package dto

// RegisterRequest is the payload for student account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"budi@kampus.ac.id"`
	Password string `json:"password" binding:"required,min=8" example:"rahasia-123"`
	FullName string `json:"fullName" binding:"required" example:"Budi Santoso"`
	NPM      string `json:"npm" binding:"required" example:"20210801001"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a signed access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"43200"`
}
