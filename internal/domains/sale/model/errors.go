package model

import "errors"

var (
	ErrInvalidSaleDate = errors.New("invalid sale date")
	ErrInvalidQuantity = errors.New("invalid sale quantity")
)
