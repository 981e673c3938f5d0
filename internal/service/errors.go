package service

import "errors"

// 服务层哨兵错误，由 handler 映射为统一响应码。
var (
	ErrNotFound                  = errors.New("record not found")
	ErrSKUExists                 = errors.New("sku already exists")
	ErrNameRequired              = errors.New("name required")
	ErrSKURequired               = errors.New("sku required")
	ErrInvalidPrice              = errors.New("price invalid")
	ErrStockNotFound             = errors.New("stock record not found")
	ErrStockExists               = errors.New("stock record already exists")
	ErrInsufficientStock         = errors.New("insufficient stock")
	ErrInvalidQuantity           = errors.New("quantity invalid")
	ErrInvalidMovementType       = errors.New("movement type invalid")
	ErrInvalidDiscount           = errors.New("discount invalid")
	ErrInvalidStatus             = errors.New("order status invalid")
	ErrOrderNotPending           = errors.New("order not in pending status")
	ErrEmailExists               = errors.New("email already registered")
	ErrInvalidEmail              = errors.New("email invalid")
	ErrPasswordTooShort          = errors.New("password too short")
	ErrInvalidCredential         = errors.New("email or password incorrect")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmptyFile                 = errors.New("file is empty")
	ErrFileTooLarge              = errors.New("file too large")
	ErrFileTypeInvalid           = errors.New("file type not allowed")
)
