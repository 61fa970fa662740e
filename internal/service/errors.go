package service

import "errors"

var (
	// ErrNotFound covers missing recipes, tags, users, and memberships.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthor is returned when a caller mutates someone else's recipe.
	ErrNotAuthor = errors.New("only the author may modify this recipe")

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReservedUsername   = errors.New("username is reserved")
	ErrInvalidUsername    = errors.New("username contains invalid characters")

	ErrNoIngredients        = errors.New("ingredients are missing")
	ErrDuplicateIngredients = errors.New("ingredients must be unique")
	ErrIngredientAmountLow  = errors.New("ingredient amount must be greater than 0")
	ErrIngredientAmountHigh = errors.New("ingredient amount must be smaller than 32000")
	ErrIngredientUnknown    = errors.New("specified ingredient does not exist")
	ErrCookingTimeLow       = errors.New("cooking time should be at least 1 minute")
	ErrCookingTimeHigh      = errors.New("cooking time cannot exceed 32000 minutes")
	ErrTagUnknown           = errors.New("specified tag does not exist")
	ErrTagNameTaken         = errors.New("tag with this name already exists")
	ErrTagColorTaken        = errors.New("tag with this color already exists")

	ErrAlreadyFavorited = errors.New("recipe is already added to favorites")
	ErrAlreadyInCart    = errors.New("recipe is already added to the shopping cart")
	ErrAlreadyFollowing = errors.New("subscription already exists")
	ErrSelfFollow       = errors.New("you can't subscribe to yourself")

	ErrInvalidImage = errors.New("image must be a base64-encoded payload")
)
