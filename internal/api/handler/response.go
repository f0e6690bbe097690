package handler

import "github.com/recipebox/recipe-api/internal/core/domain"

type userResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
		ImageURL: u.ImageURL,
	}
}

type recipeResponse struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
	UserID            int64  `json:"user_id"`
}

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	return recipeResponse{
		ID:                r.ID,
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
		UserID:            r.UserID,
	}
}

func toRecipeResponses(rs []domain.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(rs))
	for i := range rs {
		out = append(out, toRecipeResponse(&rs[i]))
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}
