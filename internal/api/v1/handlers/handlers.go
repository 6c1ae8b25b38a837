package handlers

import (
	"github.com/go-playground/validator/v10"
)

// validate checks request body structs against their validate tags
var validate = validator.New()
