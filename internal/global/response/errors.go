package response

var (
	ErrInvalidRequest    = newError(40000, "invalid request")
	ErrInvalidID         = newError(40001, "invalid identifier")
	ErrValidation        = newError(40002, "validation failed")
	ErrAlreadyExists     = newError(40003, "already exists")
	ErrAlreadyRegistered = newError(40003, "You are already registered for this event")
	ErrEmailInUse        = newError(40003, "Email already in use")
	ErrInvalidPassword   = newError(40100, "invalid email or password")
	ErrTokenInvalid      = newError(40101, "token invalid or expired")
	ErrUnauthorized      = newError(40300, "permission denied")
	ErrNotFound          = newError(40400, "not found")
	ErrRegistrationBusy  = newError(40900, "registration in progress, retry shortly")

	ErrServerInternal = newError(50000, "internal server error")
	ErrDatabase       = newError(50001, "database error")
	ErrTransport      = newError(50200, "external service unavailable")
)
