package errors

import "fmt"

// WrapStorage wraps an error with storage (I/O) context
func WrapStorage(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, context, err)
}

// WrapNotFound wraps an error with not found context
func WrapNotFound(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrNotFound, context, err)
}

// WrapInvalid wraps an error with invalid input context
func WrapInvalid(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalid, context, err)
}

// WrapDecode wraps a codec parse failure
func WrapDecode(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrDecode, context, err)
}

// WrapEncode wraps a codec serialization failure
func WrapEncode(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrEncode, context, err)
}

// WrapKubernetes wraps an error with Kubernetes context
func WrapKubernetes(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrKubernetes, context, err)
}
