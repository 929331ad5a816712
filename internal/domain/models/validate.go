package models

import "github.com/go-playground/validator/v10"

// Entities are validated once, at construction. Nothing downstream
// re-checks invariants at point of use.
var validate = validator.New()
