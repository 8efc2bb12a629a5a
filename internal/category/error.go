package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("cannot delete category with associated products")
)
