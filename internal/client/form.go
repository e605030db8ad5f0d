package client

import (
	"strings"

	"game-store/internal/models"
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

// ValidateGameInput applies the checks a form makes before submitting, so
// obvious mistakes never reach the API. It trims the name in place.
func ValidateGameInput(in *GameInput) FieldErrors {
	errs := FieldErrors{}

	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		errs["name"] = "Game name cannot be empty"
	case len([]rune(in.Name)) > models.MaxGameNameLength:
		errs["name"] = "Game name must be at most 50 characters"
	}

	switch {
	case in.Price.LessThan(models.MinPrice) || in.Price.GreaterThan(models.MaxPrice):
		errs["price"] = "Price must be between 0.01 and 1000"
	case !models.HasPriceScale(in.Price):
		errs["price"] = "Price can have at most 2 decimal places"
	}

	if in.GenreID <= 0 {
		errs["genreId"] = "Please select a genre"
	}

	if in.ReleaseDate.IsZero() {
		errs["releaseDate"] = "Please select a release date"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
