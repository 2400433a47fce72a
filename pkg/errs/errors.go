package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrStatusInternalServer      = http.StatusInternalServerError
	ErrStatusClient              = http.StatusBadRequest
	ErrStatusUnauthorized        = http.StatusUnauthorized
	ErrStatusNoPermission        = http.StatusForbidden
	ErrStatusNotFound            = http.StatusNotFound
	ErrStatusConflict            = http.StatusConflict
	ErrStatusUnprocessableEntity = http.StatusUnprocessableEntity
	ErrStatusBadGateway          = http.StatusBadGateway
	ErrStatusServiceUnavailable  = http.StatusServiceUnavailable
)

// GenericFailureMessage is shown when the remote system gives no usable reason.
const GenericFailureMessage = "Something went wrong, please try again"

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrValidation              = errors.New("Validation failed")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrUnauthorized            = errors.New("Session expired, please log in again")
	ErrNotFound                = errors.New("Resource not found")
	ErrConflict                = errors.New("Conflicting record found")
	ErrCartEmpty               = errors.New("Cart is empty")
	ErrInvalidOrderStatus      = errors.New("Unknown order status")
	ErrPartialImageDeletion    = errors.New("Deleting only some images is not supported; delete all images or upload replacements")
	ErrRemoteRejected          = errors.New("Request was rejected by the catalog service")
	ErrRemoteUnavailable       = errors.New(GenericFailureMessage)
	ErrMailDelivery            = errors.New("Failed to deliver message")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrValidation:              ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusUnauthorized,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrUnauthorized:            ErrStatusUnauthorized,
	ErrNotFound:                ErrStatusNotFound,
	ErrConflict:                ErrStatusConflict,
	ErrCartEmpty:               ErrStatusClient,
	ErrInvalidOrderStatus:      ErrStatusClient,
	ErrPartialImageDeletion:    ErrStatusUnprocessableEntity,
	ErrRemoteRejected:          ErrStatusBadGateway,
	ErrRemoteUnavailable:       ErrStatusServiceUnavailable,
	ErrMailDelivery:            ErrStatusBadGateway,
}

// RemoteError is a non-2xx answer from the catalog API. Message is the reason
// extracted from the response body, or GenericFailureMessage.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrRemoteRejected
	}
}

func NewRemoteError(status int, message string) *RemoteError {
	if message == "" {
		message = GenericFailureMessage
	}
	return &RemoteError{Status: status, Message: message}
}

// Unavailable wraps a transport failure so that it maps to ErrRemoteUnavailable.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
}

func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for sentinel, status := range errorMap {
		if errors.Is(err, sentinel) {
			return status
		}
	}

	return errorMap[ErrInternalServer]
}

// Message returns the text safe to show to a user for err.
func Message(err error) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Message
	}

	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return ErrInternalServer.Error()
}
