package entity

import "errors"

// Ошибки конфигурации: тип описан неверно или не зарегистрирован.
var (
	ErrInvalidType       = errors.New("entity type must be a struct")
	ErrNotRegistered     = errors.New("entity type is not registered")
	ErrAlreadyRegistered = errors.New("entity type is already registered")
	ErrNoIdentity        = errors.New("entity type has no identity field")
	ErrMultipleIdentity  = errors.New("entity type has more than one identity field")
	ErrIdentityKind      = errors.New("identity field must be a string or an integer")
	ErrLazyIdentity      = errors.New("identity field cannot be lazy")
	ErrDuplicateStorage  = errors.New("duplicate storage name")
	ErrUnsupportedType   = errors.New("unsupported field type")
	ErrBadTag            = errors.New("malformed recmap tag")

	// ErrNilIdentity — у объекта не заполнен id (нулевое значение или nil).
	ErrNilIdentity = errors.New("identity value is not set")
)
