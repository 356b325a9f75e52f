package service

import "errors"

// 服务层哨兵错误：处理器按 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrEmailExists        = errors.New("email already registered")
	ErrEmailInvalid       = errors.New("email format is invalid")
	ErrPasswordTooWeak    = errors.New("password too weak")
	ErrMemberDisabled     = errors.New("member disabled")

	ErrProductNameRequired     = errors.New("product name is required")
	ErrProductCategoryRequired = errors.New("product category is required")
	ErrProductPriceInvalid     = errors.New("product price must be positive")
	ErrProductStockInvalid     = errors.New("product stock must not be negative")
	ErrProductNotAvailable     = errors.New("product not available")
	ErrTooManyImages           = errors.New("too many product images")

	ErrCartEmpty       = errors.New("cart is empty")
	ErrCheckoutExpired = errors.New("checkout staging expired")

	ErrOrderValidation        = errors.New("order validation failed")
	ErrOrderStatusInvalid     = errors.New("order status invalid")
	ErrOrderTransitionInvalid = errors.New("order status transition not allowed")

	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	ErrUploadTypeInvalid = errors.New("upload type not allowed")
	ErrUploadTooLarge    = errors.New("upload exceeds size limit")
)
