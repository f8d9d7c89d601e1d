package model

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// AuthoringCategories lists the categories offered when authoring a product.
var AuthoringCategories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Garden",
	"Sports",
	"Beauty",
	"Toys",
	"Automotive",
	"Health",
	"Food & Beverages",
	"Watch",
}

// ProductDraft is the user-supplied part of a locally authored product.
type ProductDraft struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Rating      *float64 `json:"rating,omitempty"`
}

// Validate applies the authoring form rules to the draft.
// It is a gate for callers accepting user input; the catalogue store itself
// accepts any draft.
func (d *ProductDraft) Validate() error {
	var errs ValidationErrors

	title := strings.TrimSpace(d.Title)
	switch {
	case title == "":
		errs = append(errs, ValidationError{Field: "title", Message: "Product title is required"})
	case utf8.RuneCountInString(d.Title) < 3:
		errs = append(errs, ValidationError{Field: "title", Message: "Title must be at least 3 characters long"})
	}

	if d.Price <= 0 {
		errs = append(errs, ValidationError{Field: "price", Message: "Please enter a valid price"})
	}

	description := strings.TrimSpace(d.Description)
	switch {
	case description == "":
		errs = append(errs, ValidationError{Field: "description", Message: "Description is required"})
	case utf8.RuneCountInString(d.Description) < 10:
		errs = append(errs, ValidationError{Field: "description", Message: "Description must be at least 10 characters long"})
	}

	if !isAuthoringCategory(d.Category) {
		errs = append(errs, ValidationError{Field: "category", Message: "Please select a category"})
	}

	image := strings.TrimSpace(d.Image)
	switch {
	case image == "":
		errs = append(errs, ValidationError{Field: "image", Message: "Image URL is required"})
	case !isValidURL(image):
		errs = append(errs, ValidationError{Field: "image", Message: "Please enter a valid image URL"})
	}

	if d.Rating == nil || *d.Rating < 1 || *d.Rating > 5 {
		errs = append(errs, ValidationError{Field: "rating", Message: "Please select a rating"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isAuthoringCategory(category string) bool {
	for _, c := range AuthoringCategories {
		if c == category {
			return true
		}
	}
	return false
}

func isValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidationError describes a single rejected draft field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every rejected field of a draft.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "invalid product draft: " + strings.Join(msgs, "; ")
}
