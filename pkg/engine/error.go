package engine

import "errors"

var (
	ErrRejected      = errors.New("order rejected")
	errOrderNotFound = errors.New("orderID not found")
)
