package domain

import (
	"strings"
	"time"
)

const MinInstructionsLength = 20

// MaxMinutesToComplete is the largest value the stores can hold (int4).
const MaxMinutesToComplete = 2147483647

// Recipe is owned content. UserID is fixed at creation.
type Recipe struct {
	ID                int64
	Title             string
	Instructions      string
	MinutesToComplete *int
	UserID            int64
	CreatedAt         time.Time
}

// RecipeDraft carries the caller-supplied fields of a recipe before it is
// persisted.
type RecipeDraft struct {
	Title             string `label:"Title" validate:"required,max=255"`
	Instructions      string `label:"Instructions" validate:"required,min=20"`
	MinutesToComplete *int   `label:"Minutes to complete" validate:"omitempty,gt=0,max=2147483647"`
	UserID            int64  `label:"Owner" validate:"gt=0"`
}

// NewRecipe validates d and returns an unsaved Recipe.
func NewRecipe(d RecipeDraft) (*Recipe, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Instructions = strings.TrimSpace(d.Instructions)
	if err := Validate(d); err != nil {
		return nil, err
	}
	return &Recipe{
		Title:             d.Title,
		Instructions:      d.Instructions,
		MinutesToComplete: d.MinutesToComplete,
		UserID:            d.UserID,
		CreatedAt:         time.Now().UTC(),
	}, nil
}
