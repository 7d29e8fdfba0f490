package services

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotPending     = errors.New("order is not pending")
	ErrEmptyCart           = errors.New("no cart lines provided")
	ErrInvalidOrderType    = errors.New("invalid order type")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrRegisterAlreadyOpen = errors.New("a cash register is already open")
	ErrNoOpenRegister      = errors.New("no open cash register")
)
