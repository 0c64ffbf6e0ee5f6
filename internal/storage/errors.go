package storage

import "errors"

var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrDuplicateItemCode = errors.New("duplicate item code")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrContractFinalized = errors.New("contract already finalized")
)
