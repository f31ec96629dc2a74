package view

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/geoadmin/internal/view/encoding"
)

// Sentinel errors for component operations.
var (
	ErrNotFound         = errors.New("view: resource not found")
	ErrDecryptFailed    = errors.New("view: parameter decryption failed")
	ErrSignatureInvalid = errors.New("view: signature verification failed")
	ErrInvalidFormat    = errors.New("view: invalid parameter format")
	ErrHydrationFailed  = errors.New("view: hydration failed")
	ErrMethodNotAllowed = errors.New("view: method not allowed")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsBadRequest reports whether err came from a malformed or forged props token.
func IsBadRequest(err error) bool {
	return IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat)
}

// WrapDecodeError maps encoding package errors onto the view sentinels.
func WrapDecodeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}

// ErrorComponent renders an inline error box in place of a component.
func ErrorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, werr := io.WriteString(w, `<div class="view-error" role="alert">`+html.EscapeString(err.Error())+`</div>`)
		return werr
	})
}
