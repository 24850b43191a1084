package errx

import (
	"fmt"
	"sync"
)

// Code is a fully qualified error code such as "APPLICATION.NOT_FOUND"
type Code string

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry groups the error codes of one domain under a common prefix
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics.
func (r *Registry) Register(name string, t Type, httpStatus int, message string) Code {
	code := Code(fmt.Sprintf("%s.%s", r.prefix, name))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[code]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", code))
	}
	r.defs[code] = definition{errType: t, httpStatus: httpStatus, message: message}
	return code
}

// New builds a fresh error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: TypeInternal.HTTPStatus(),
		}
	}

	return &Error{
		Code:       code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// Prefix returns the registry prefix
func (r *Registry) Prefix() string {
	return r.prefix
}
