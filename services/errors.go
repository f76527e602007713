package services

import "errors"

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrCartNotOwned    = errors.New("cart does not belong to the caller")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrItemNotFound    = errors.New("cart line not found")
	ErrCouponInvalid   = errors.New("coupon invalid or expired")
	ErrCouponCodeTaken = errors.New("coupon code already exists")
	ErrOutOfStock      = errors.New("not enough stock")
	ErrProductMissing  = errors.New("product not found")
	ErrCategoryMissing = errors.New("category not found")
	ErrInvalidPrice    = errors.New("invalid price")

	ErrNoCustomer        = errors.New("customer profile required")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateTx       = errors.New("transaction id already used")
	ErrInvalidTransition = errors.New("invalid_or_conflict")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrMissingFields      = errors.New("missing required fields")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already used")
	ErrTokenInvalid       = errors.New("reset token invalid or expired")

	ErrNotSeller     = errors.New("no establishment for this account")
	ErrAlreadySeller = errors.New("account already has an establishment")
	ErrRoleConflict  = errors.New("account role cannot hold an establishment")
	ErrForbidden     = errors.New("forbidden")
)
