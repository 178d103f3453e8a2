package handler

import "github.com/actuallystonmai/movie-reviews/internal/domain"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ReviewCreatedResponse struct {
	Message string         `json:"message"`
	Review  *domain.Review `json:"review"`
}

type RefreshResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type DBStatusResponse struct {
	Status string `json:"status"`
	Result int    `json:"result"`
}
