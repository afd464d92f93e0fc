package handler

import "music-store-server/internal/shared/models"

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	RetryPass string `json:"retryPass" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type ratingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

type commentRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type authResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	IsActivated bool   `json:"isActivated"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		IsActivated: u.IsActivated,
	}
}
