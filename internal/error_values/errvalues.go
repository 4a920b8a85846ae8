package errorvalues

import "errors"

var (
	ErrInvalidInput     = errors.New("required field is empty or invalid")
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrUserNotVerified  = errors.New("account is not verified yet")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrCodeMismatch     = errors.New("verification code doesn't match")
	ErrNoPendingCode    = errors.New("no verification code is pending")
	ErrProtectedUser    = errors.New("the admin account can't be deleted")
	ErrEntryNotFound    = errors.New("entry doesn't exists")
	ErrNotConfirmed     = errors.New("destructive operation wasn't confirmed")
	ErrDelivery         = errors.New("notification delivery failed")
)
