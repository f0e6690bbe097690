package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

type RecipeHandler struct {
	recipeService ports.RecipeService
}

func NewRecipeHandler(recipeService ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

type createRecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}

// List returns the recipes owned by the logged-in user.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {array}   recipeResponse
// @Failure      401  {object}  errorResponse
// @Router       /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	recipes, err := h.recipeService.ListRecipes(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponses(recipes))
}

// Create adds a recipe owned by the logged-in user.
//
// @Summary      Create recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body      createRecipeRequest  true  "Recipe"
// @Success      201   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request().Context(), ports.CreateRecipeInput{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
		UserID:            id.UserID,
	})
	if err != nil {
		return err
	}

	metrics.RecipesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toRecipeResponse(recipe))
}
