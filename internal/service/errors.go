package service

import "errors"

var (
	ErrProductNotFound = errors.New("product not found in list")
	ErrEmptyListName   = errors.New("list name is empty")
)
