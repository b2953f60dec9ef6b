package service

import (
	"github.com/dukerupert/gamestore/internal/cart"
	"github.com/dukerupert/gamestore/internal/catalog"
	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/promo"
)

// Session errors - use domain.ENOTFOUND
var (
	ErrSessionNotFound = domain.Errorf(domain.ENOTFOUND, "", "Session not found")
)

// Cart and promo errors, re-exported so handlers depend on one package.
var (
	ErrItemNotFound           = catalog.ErrItemNotFound
	ErrIndexOutOfRange        = cart.ErrIndexOutOfRange
	ErrUnknownPromoCode       = promo.ErrUnknownCode
	ErrPromoExhausted         = promo.ErrExhausted
	ErrCheckoutNotImplemented = cart.ErrCheckoutNotImplemented
)
