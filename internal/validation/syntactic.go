// Package validation holds the two request validation layers.
//
// SYNTACTIC (this file):
// Pure functions of the request body. No I/O, no context, safe to call before a
// transaction exists. Each validator checks fields in a fixed order and returns
// the FIRST violation, so a body missing both username and email always fails
// with "Username required".
//
// SEMANTIC (semantic.go):
// Checks that need persisted state (uniqueness, existence). They take the
// repositories bound to the caller's transaction so the read sees the same
// snapshot the following write will use.
//
// Both layers return *apperror.AppError values; callers propagate them as-is.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/habitrack/internal/apperror"
	"github.com/sakif/habitrack/internal/model"
)

// Field bounds.
const (
	UsernameMinLength   = 5
	UsernameMaxLength   = 20
	PersonNameMaxLength = 64
	EmailMaxLength      = 255
	PasswordMinLength   = 8
	PasswordMaxBytes    = 72 // bcrypt input limit
	ResultNameMinLength = 2
	ResultNameMaxLength = 100
	HabitNameMinLength  = 2
	HabitNameMaxLength  = 100
	ActionNameMinLength = 2
	ActionNameMaxLength = 32
)

var (
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	idPattern    = regexp.MustCompile(`^[1-9][0-9]*$`)

	// validate is safe for concurrent use and caches rule parsing.
	validate = validator.New(validator.WithRequiredStructEnabled())
)

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// ValidateUserCreate checks a signup body. Order: username presence, username
// length, first name, last name, email presence, email format, password
// presence, password length.
func ValidateUserCreate(req model.CreateUserRequest) (model.CreateUserRequest, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" {
		return req, apperror.MissingField("username", apperror.MsgUsernameRequired)
	}
	if err := checkUsername(req.Username); err != nil {
		return req, err
	}

	if req.FirstName == "" {
		return req, apperror.MissingField("firstName", apperror.MsgFirstNameMissing)
	}
	if length(req.FirstName) > PersonNameMaxLength {
		return req, apperror.InvalidFormat("firstName", apperror.MsgFirstNameTooLong)
	}

	if req.LastName == "" {
		return req, apperror.MissingField("lastName", apperror.MsgLastNameMissing)
	}
	if length(req.LastName) > PersonNameMaxLength {
		return req, apperror.InvalidFormat("lastName", apperror.MsgLastNameTooLong)
	}

	if req.Email == "" {
		return req, apperror.MissingField("email", apperror.MsgEmailRequired)
	}
	if err := checkEmail(req.Email); err != nil {
		return req, err
	}

	if req.Password == "" {
		return req, apperror.MissingField("password", apperror.MsgPasswordRequired)
	}
	if err := checkPassword(req.Password); err != nil {
		return req, err
	}

	return req, nil
}

// ValidateUserUpdate checks a partial user patch. Absent and empty fields are
// "not supplied" and come back as nil; supplied fields follow the create rules.
func ValidateUserUpdate(req model.UpdateUserRequest) (model.UpdateUserRequest, error) {
	req.Username = normalize(req.Username, true)
	req.FirstName = normalize(req.FirstName, true)
	req.LastName = normalize(req.LastName, true)
	req.Email = normalize(req.Email, true)
	req.Password = normalize(req.Password, false)

	if req.Username != nil {
		if err := checkUsername(*req.Username); err != nil {
			return req, err
		}
	}
	if req.FirstName != nil && length(*req.FirstName) > PersonNameMaxLength {
		return req, apperror.InvalidFormat("firstName", apperror.MsgFirstNameTooLong)
	}
	if req.LastName != nil && length(*req.LastName) > PersonNameMaxLength {
		return req, apperror.InvalidFormat("lastName", apperror.MsgLastNameTooLong)
	}
	if req.Email != nil {
		if err := checkEmail(*req.Email); err != nil {
			return req, err
		}
	}
	if req.Password != nil {
		if err := checkPassword(*req.Password); err != nil {
			return req, err
		}
	}

	return req, nil
}

// ValidateResultCreate checks a new result body: name presence and bounds,
// then the owning user id.
//
// A malformed user id cannot reference any user, so it is reported as
// "User not found" rather than as a format error.
func ValidateResultCreate(req model.CreateResultRequest) (model.CreateResultRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.UserID = strings.TrimSpace(req.UserID)

	if err := checkName(req.Name, "name", ResultNameMinLength, ResultNameMaxLength,
		apperror.MsgResultNameMissing, apperror.MsgResultNameShort, apperror.MsgResultNameTooLong); err != nil {
		return req, err
	}

	if req.UserID == "" {
		return req, apperror.MissingField("userId", apperror.MsgUserIDRequired)
	}
	if !uuidPattern.MatchString(req.UserID) {
		return req, apperror.NotFound(apperror.ResourceUser)
	}
	req.UserID = strings.ToLower(req.UserID)

	return req, nil
}

// ValidateResultUpdate checks a partial result patch.
func ValidateResultUpdate(req model.UpdateResultRequest) (model.UpdateResultRequest, error) {
	req.Name = normalize(req.Name, true)
	req.Description = normalize(req.Description, true)

	if req.Name != nil {
		if err := checkNameBounds(*req.Name, "name", ResultNameMinLength, ResultNameMaxLength,
			apperror.MsgResultNameShort, apperror.MsgResultNameTooLong); err != nil {
			return req, err
		}
	}
	return req, nil
}

// ValidateHabitCreate checks a new habit body: name, color, then result id.
func ValidateHabitCreate(req model.CreateHabitRequest) (model.CreateHabitRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Color = strings.TrimSpace(req.Color)

	if err := checkName(req.Name, "name", HabitNameMinLength, HabitNameMaxLength,
		apperror.MsgHabitNameMissing, apperror.MsgHabitNameShort, apperror.MsgHabitNameTooLong); err != nil {
		return req, err
	}
	if err := checkColor(req.Color); err != nil {
		return req, err
	}
	if err := checkParentID(req.ResultID, "resultId", apperror.MsgResultIDRequired); err != nil {
		return req, err
	}
	return req, nil
}

// ValidateHabitUpdate checks a partial habit patch.
func ValidateHabitUpdate(req model.UpdateHabitRequest) (model.UpdateHabitRequest, error) {
	req.Name = normalize(req.Name, true)
	req.Description = normalize(req.Description, true)
	req.Color = normalize(req.Color, true)

	if req.Name != nil {
		if err := checkNameBounds(*req.Name, "name", HabitNameMinLength, HabitNameMaxLength,
			apperror.MsgHabitNameShort, apperror.MsgHabitNameTooLong); err != nil {
			return req, err
		}
	}
	if req.Color != nil && !colorPattern.MatchString(*req.Color) {
		return req, apperror.InvalidFormat("color", apperror.MsgColorInvalid)
	}
	return req, nil
}

// ValidateActionCreate checks a new action body: name, color, then habit id.
func ValidateActionCreate(req model.CreateActionRequest) (model.CreateActionRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Color = strings.TrimSpace(req.Color)

	if err := checkName(req.Name, "name", ActionNameMinLength, ActionNameMaxLength,
		apperror.MsgActionNameMissing, apperror.MsgActionNameShort, apperror.MsgActionNameTooLong); err != nil {
		return req, err
	}
	if err := checkColor(req.Color); err != nil {
		return req, err
	}
	if err := checkParentID(req.HabitID, "habitId", apperror.MsgHabitIDRequired); err != nil {
		return req, err
	}
	return req, nil
}

// ValidateActionUpdate checks a partial action patch.
func ValidateActionUpdate(req model.UpdateActionRequest) (model.UpdateActionRequest, error) {
	req.Name = normalize(req.Name, true)
	req.Color = normalize(req.Color, true)

	if req.Name != nil {
		if err := checkNameBounds(*req.Name, "name", ActionNameMinLength, ActionNameMaxLength,
			apperror.MsgActionNameShort, apperror.MsgActionNameTooLong); err != nil {
			return req, err
		}
	}
	if req.Color != nil && !colorPattern.MatchString(*req.Color) {
		return req, apperror.InvalidFormat("color", apperror.MsgColorInvalid)
	}
	return req, nil
}

// ValidateUUID checks the 8-4-4-4-12 hex shape of a user id and returns it in
// lower case, the form ids are stored in. It says nothing about whether the
// user exists.
func ValidateUUID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperror.MissingField("id", apperror.MsgIDRequired)
	}
	if !uuidPattern.MatchString(raw) {
		return "", apperror.InvalidFormat("id", apperror.MsgInvalidUUID)
	}
	return strings.ToLower(raw), nil
}

// ValidateID parses a numeric entity id. Only plain positive base-10 integers
// pass: no sign, no leading zeros.
func ValidateID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperror.MissingField("id", apperror.MsgIDRequired)
	}
	if !idPattern.MatchString(raw) {
		return 0, apperror.InvalidFormat("id", apperror.MsgInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.InvalidFormat("id", apperror.MsgInvalidID)
	}
	return id, nil
}

func checkUsername(username string) error {
	if length(username) < UsernameMinLength {
		return apperror.InvalidFormat("username", apperror.MsgUsernameTooShort)
	}
	if length(username) > UsernameMaxLength {
		return apperror.InvalidFormat("username", apperror.MsgUsernameTooLong)
	}
	return nil
}

func checkEmail(email string) error {
	if len(email) > EmailMaxLength || validate.Var(email, "email") != nil {
		return apperror.InvalidFormat("email", apperror.MsgEmailInvalid)
	}
	return nil
}

func checkPassword(password string) error {
	if length(password) < PasswordMinLength {
		return apperror.InvalidFormat("password", apperror.MsgPasswordTooShort)
	}
	if len(password) > PasswordMaxBytes {
		return apperror.InvalidFormat("password", apperror.MsgPasswordTooLong)
	}
	return nil
}

func checkName(name, field string, minLen, maxLen int, missing, short, long string) error {
	if name == "" {
		return apperror.MissingField(field, missing)
	}
	return checkNameBounds(name, field, minLen, maxLen, short, long)
}

func checkNameBounds(name, field string, minLen, maxLen int, short, long string) error {
	if length(name) < minLen {
		return apperror.InvalidFormat(field, short)
	}
	if length(name) > maxLen {
		return apperror.InvalidFormat(field, long)
	}
	return nil
}

func checkColor(color string) error {
	if color == "" {
		return apperror.MissingField("color", apperror.MsgColorRequired)
	}
	if !colorPattern.MatchString(color) {
		return apperror.InvalidFormat("color", apperror.MsgColorInvalid)
	}
	return nil
}

func checkParentID(id int64, field, missing string) error {
	if id == 0 {
		return apperror.MissingField(field, missing)
	}
	if id < 0 {
		return apperror.InvalidFormat(field, apperror.MsgInvalidID)
	}
	return nil
}

// normalize maps nil and empty (after optional trimming) to nil.
func normalize(v *string, trim bool) *string {
	if v == nil {
		return nil
	}
	s := *v
	if trim {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return nil
	}
	return &s
}
