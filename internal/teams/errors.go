package teams

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound = errors.New("not found")

	ErrTeamNotFound    = fmt.Errorf("team %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("profile %w", ErrNotFound)
	ErrSeasonNotFound  = fmt.Errorf("season %w", ErrNotFound)

	// ErrCaptainConflict means the user already captains a team, possibly this one.
	ErrCaptainConflict = errors.New("user already captains a team")
)

// ValidationError reports rejected team input.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(e.Err, &fieldErrs) {
		return e.Err.Error()
	}

	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reasons = append(reasons, describeFieldError(fe))
	}
	return strings.Join(reasons, "; ")
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "gt":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " is invalid"
	}
}
