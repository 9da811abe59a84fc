package model

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ErrorKind classifies a DomainError for the HTTP boundary.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindUnauthenticated ErrorKind = "unauthenticated"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeNoAddress           = "NO_ADDRESS"
	ErrCodeCartEmpty           = "CART_EMPTY"
	ErrCodeInvalidCoupon       = "INVALID_COUPON"
	ErrCodeCouponInactive      = "COUPON_INACTIVE"
	ErrCodeCouponMinimum       = "COUPON_MINIMUM_NOT_MET"
	ErrCodeCouponExhausted     = "COUPON_USAGE_LIMIT"
	ErrCodeCouponUserExhausted = "COUPON_USER_USAGE_LIMIT"
	ErrCodeInvalidTransition   = "INVALID_STATUS_TRANSITION"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeOrderMissing        = "ORDER_DOES_NOT_EXIST"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeCartItemNotFound    = "CART_ITEM_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidRating       = "INVALID_RATING"
	ErrCodeDuplicateReview     = "DUPLICATE_REVIEW"
	ErrCodeReviewForbidden     = "REVIEW_FORBIDDEN"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
)

// DomainError is a business rule failure with a human readable message.
type DomainError struct {
	Code    string
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new validation-kind domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Kind:    KindValidation,
		Message: message,
	}
}

func newError(code string, kind ErrorKind, message string) *DomainError {
	return &DomainError{Code: code, Kind: kind, Message: message}
}

// Common domain errors
var (
	ErrNoAddress           = NewDomainError(ErrCodeNoAddress, "No address found")
	ErrCartEmpty           = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrInvalidCoupon       = NewDomainError(ErrCodeInvalidCoupon, "Invalid coupon code.")
	ErrCouponInactive      = NewDomainError(ErrCodeCouponInactive, "Coupon is not active or expired.")
	ErrCouponMinimum       = NewDomainError(ErrCodeCouponMinimum, "Order does not meet minimum amount.")
	ErrCouponExhausted     = NewDomainError(ErrCodeCouponExhausted, "Coupon usage limit reached.")
	ErrCouponUserExhausted = NewDomainError(ErrCodeCouponUserExhausted, "You have used this coupon the maximum number of times.")
	ErrInvalidTransition   = NewDomainError(ErrCodeInvalidTransition, "Invalid status transition.")
	ErrOrderMissing        = NewDomainError(ErrCodeOrderMissing, "Order does not exist.")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidRating       = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5.")
	ErrDuplicateReview     = NewDomainError(ErrCodeDuplicateReview, "You have already reviewed this order.")

	ErrOrderNotFound    = newError(ErrCodeOrderNotFound, KindNotFound, "Order not found.")
	ErrProductNotFound  = newError(ErrCodeProductNotFound, KindNotFound, "Product not found.")
	ErrCartItemNotFound = newError(ErrCodeCartItemNotFound, KindNotFound, "Cart item not found.")

	ErrReviewForbidden = newError(ErrCodeReviewForbidden, KindForbidden, "You can only review your own delivered orders.")
	ErrForbidden       = newError(ErrCodeForbidden, KindForbidden, "You do not have permission to perform this action.")
	ErrUnauthenticated = newError(ErrCodeUnauthorised, KindUnauthenticated, "Authentication credentials were not provided.")
)
