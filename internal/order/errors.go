package order

import "errors"

// ValidationError is a user-facing rejection of a draft action. The draft is
// never modified when one is returned.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNoProductSelected      = &ValidationError{Code: "no_product_selected", Message: "please select a product"}
	ErrProductNotFound        = &ValidationError{Code: "product_not_found", Message: "product not found"}
	ErrInvalidQuantity        = &ValidationError{Code: "invalid_quantity", Message: "quantity must be greater than 0"}
	ErrInsufficientStock      = &ValidationError{Code: "insufficient_stock", Message: "not enough stock available"}
	ErrInsufficientStockTotal = &ValidationError{Code: "insufficient_stock_total", Message: "not enough stock available for the total quantity"}
	ErrEmptyOrder             = &ValidationError{Code: "empty_order", Message: "please add at least one product"}
	ErrCustomerRequired       = &ValidationError{Code: "customer_required", Message: "please enter customer name"}
	ErrInvalidOrderType       = &ValidationError{Code: "invalid_order_type", Message: "order type must be Retail or Wholesale"}
	ErrInvalidPaymentStatus   = &ValidationError{Code: "invalid_payment_status", Message: "payment status must be Paid, Unpaid or Partially Paid"}
	ErrDraftClosed            = &ValidationError{Code: "draft_closed", Message: "draft is already committed or abandoned"}
)

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
