package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCart          = errors.New("invalid cart")
	ErrInvalidCustomer      = errors.New("invalid customer")
	ErrUnknownMenuItem      = errors.New("unknown menu item")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// UnknownMenuItemError names the cart line that did not resolve.
type UnknownMenuItemError struct {
	MenuID string
}

func (e *UnknownMenuItemError) Error() string {
	return fmt.Sprintf("menu %s not found", e.MenuID)
}

func (e *UnknownMenuItemError) Is(target error) bool {
	return target == ErrUnknownMenuItem
}
