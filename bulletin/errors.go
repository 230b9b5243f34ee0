package bulletin

import (
	"errors"
	"fmt"

	"github.com/bulletinchain/go-sdk/internal/authz"
)

// ErrorKind classifies a StoreError. Callers switch on Kind rather than
// matching error strings.
type ErrorKind int

const (
	ErrEmptyData ErrorKind = iota + 1
	ErrFileTooLarge
	ErrChunkTooLarge
	ErrInvalidConfig
	ErrInvalidCid
	ErrCidCalculationFailed
	ErrUnsupportedHash
	ErrDagEncodingFailed
	ErrDagDecodingFailed
	ErrInsufficientAuthorization
	ErrAuthorizationExpired
	ErrAuthorizationFailed
	ErrTransactionFailed
	ErrTimeout
	ErrUnsupportedOperation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyData:
		return "EmptyData"
	case ErrFileTooLarge:
		return "FileTooLarge"
	case ErrChunkTooLarge:
		return "ChunkTooLarge"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInvalidCid:
		return "InvalidCid"
	case ErrCidCalculationFailed:
		return "CidCalculationFailed"
	case ErrUnsupportedHash:
		return "UnsupportedHash"
	case ErrDagEncodingFailed:
		return "DagEncodingFailed"
	case ErrDagDecodingFailed:
		return "DagDecodingFailed"
	case ErrInsufficientAuthorization:
		return "InsufficientAuthorization"
	case ErrAuthorizationExpired:
		return "AuthorizationExpired"
	case ErrAuthorizationFailed:
		return "AuthorizationFailed"
	case ErrTransactionFailed:
		return "TransactionFailed"
	case ErrTimeout:
		return "Timeout"
	case ErrUnsupportedOperation:
		return "UnsupportedOperation"
	default:
		return "Unknown"
	}
}

// StoreError is the error type every public operation in this package
// returns. It carries a Kind plus whatever structured fields that kind
// needs, and wraps the underlying Cause for errors.Is/errors.As.
type StoreError struct {
	Kind  ErrorKind
	Cause error

	// Set only for ErrInsufficientAuthorization.
	Need      *authz.Estimate
	Available *authz.Snapshot

	// Set only for ErrAuthorizationExpired.
	ExpiredAtBlock uint64
	CurrentBlock   uint64
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bulletin: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("bulletin: %s", e.Kind)
}

func (e *StoreError) Unwrap() error { return e.Cause }

// Is reports whether target is a StoreError of the same Kind, so callers
// can do errors.Is(err, &StoreError{Kind: ErrFileTooLarge}) without
// constructing the full structured value.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newStoreError(kind ErrorKind, cause error) *StoreError {
	return &StoreError{Kind: kind, Cause: cause}
}

// AsInsufficientAuthorization extracts the Need/Available fields from an
// InsufficientAuthorization error, if err is (or wraps) one.
func AsInsufficientAuthorization(err error) (need authz.Estimate, available authz.Snapshot, ok bool) {
	var se *StoreError
	if !errors.As(err, &se) || se.Kind != ErrInsufficientAuthorization {
		return authz.Estimate{}, authz.Snapshot{}, false
	}
	if se.Need == nil || se.Available == nil {
		return authz.Estimate{}, authz.Snapshot{}, false
	}
	return *se.Need, *se.Available, true
}

// AsAuthorizationExpired extracts the expiry fields from an
// AuthorizationExpired error, if err is (or wraps) one.
func AsAuthorizationExpired(err error) (expiredAtBlock, currentBlock uint64, ok bool) {
	var se *StoreError
	if !errors.As(err, &se) || se.Kind != ErrAuthorizationExpired {
		return 0, 0, false
	}
	return se.ExpiredAtBlock, se.CurrentBlock, true
}

// Kind extracts the ErrorKind from err, if it is (or wraps) a StoreError.
func Kind(err error) (ErrorKind, bool) {
	var se *StoreError
	if !errors.As(err, &se) {
		return 0, false
	}
	return se.Kind, true
}

func wrapGuardError(err error) *StoreError {
	if err == nil {
		return nil
	}
	var insufficient *authz.InsufficientAuthorizationError
	if errors.As(err, &insufficient) {
		return &StoreError{
			Kind:      ErrInsufficientAuthorization,
			Cause:     err,
			Need:      &insufficient.Need,
			Available: &insufficient.Available,
		}
	}
	var expired *authz.AuthorizationExpiredError
	if errors.As(err, &expired) {
		return &StoreError{
			Kind:           ErrAuthorizationExpired,
			Cause:          err,
			ExpiredAtBlock: expired.ExpiredAtBlock,
			CurrentBlock:   expired.CurrentBlock,
		}
	}
	return newStoreError(ErrAuthorizationFailed, err)
}
