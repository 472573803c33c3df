package apperror

// Client-facing messages. Tests and clients match on these strings, so they
// are part of the API contract.
const (
	MsgIDRequired     = "Id required"
	MsgInvalidUUID    = "Id is not a valid UUID"
	MsgInvalidID      = "Id is not a valid id"
	MsgInvalidJSON    = "Invalid JSON body"
	MsgInternal       = "An internal error occurred"
	MsgUnauthorized   = "Unauthorized"
	MsgBadCredentials = "Invalid username or password"

	MsgUsernameRequired = "Username required"
	MsgUsernameTooShort = "Username must contain at least 5 characters"
	MsgUsernameTooLong  = "Username must contain at most 20 characters"
	MsgUsernameTaken    = "Username already exists"
	MsgFirstNameMissing = "First name required"
	MsgFirstNameTooLong = "First name must contain at most 64 characters"
	MsgLastNameMissing  = "Last name required"
	MsgLastNameTooLong  = "Last name must contain at most 64 characters"
	MsgEmailRequired    = "Email required"
	MsgEmailInvalid     = "Email is invalid"
	MsgEmailTaken       = "Email already exists"
	MsgPasswordRequired = "Password required"
	MsgPasswordTooShort = "Password must contain at least 8 characters"
	MsgPasswordTooLong  = "Password must contain at most 72 characters"

	MsgUserIDRequired    = "User id required"
	MsgResultNameMissing = "Result name required"
	MsgResultNameShort   = "Result name must contain at least 2 characters"
	MsgResultNameTooLong = "Result name too long"

	MsgResultIDRequired = "Result id required"
	MsgHabitNameMissing = "Habit name required"
	MsgHabitNameShort   = "Habit name must contain at least 2 characters"
	MsgHabitNameTooLong = "Habit name too long"

	MsgHabitIDRequired   = "Habit id required"
	MsgActionNameMissing = "Action name required"
	MsgActionNameShort   = "Action name must contain at least 2 characters"
	MsgActionNameTooLong = "Action name too long"

	MsgColorRequired = "Color required"
	MsgColorInvalid  = "Color is not a valid hex color"
)

// Resource names used with NotFound.
const (
	ResourceUser   = "User"
	ResourceResult = "Result"
	ResourceHabit  = "Habit"
	ResourceAction = "Action"
)
