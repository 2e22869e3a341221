package model

import "errors"

var (
	ErrUnknownPeriod = errors.New("unknown ranking period")
	ErrRankingQuery  = errors.New("ranking query failed")
	ErrWindowQuery   = errors.New("window query failed")
)
