package model

import "errors"

var (
	ErrDuplicateISBN = errors.New("isbn13 already exists in catalog")
	ErrListBooks     = errors.New("list books failed")
)
