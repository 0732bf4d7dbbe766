package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func validateProduct(p *models.Product) error {
	if p == nil {
		return fmt.Errorf("%w: product cannot be nil", ErrInvalidInput)
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Brand = strings.TrimSpace(p.Brand)

	if err := validate.Struct(p); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			firstErr := validationErr[0]
			switch firstErr.Field() {
			case "Name":
				return fmt.Errorf("%w: product name required", ErrInvalidInput)
			case "Category":
				return fmt.Errorf("%w: product category required", ErrInvalidInput)
			case "Brand":
				return fmt.Errorf("%w: product brand required", ErrInvalidInput)
			case "Stock":
				return fmt.Errorf("%w: product stock cannot be negative", ErrInvalidInput)
			case "ReorderLevel":
				return fmt.Errorf("%w: reorder level cannot be negative", ErrInvalidInput)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product price cannot be negative", ErrInvalidInput)
	}

	return nil
}

func validateCustomer(c *models.Customer) error {
	if c == nil {
		return fmt.Errorf("%w: customer cannot be nil", ErrInvalidInput)
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Type == "" {
		c.Type = models.OrderTypeRetail
	}

	if err := validate.Struct(c); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			switch validationErr[0].Field() {
			case "Name":
				return fmt.Errorf("%w: name must be 2-150 characters", ErrInvalidInput)
			case "Email":
				return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
			case "Phone":
				return fmt.Errorf("%w: phone number too long", ErrInvalidInput)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !c.Type.Valid() {
		return fmt.Errorf("%w: customer type must be Retail or Wholesale", ErrInvalidInput)
	}

	return nil
}

func matchesCustomer(c models.Customer, search string) bool {
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term)
}

func matchesFilter(p models.Product, f ProductFilter) bool {
	if f.Category != "" && f.Category != "All" && p.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term)
}

func clampedDecrement(stock, delta int) (newStock, applied int) {
	newStock = stock - delta
	if newStock < 0 {
		newStock = 0
	}
	return newStock, newStock - stock
}
