package handler

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
)

// PanicError wraps a recovered panic value that was not an error.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Coerce turns an arbitrary thrown value into an error. Integers become
// bare status errors ("404"), strings become messages, errors pass through,
// anything else becomes a *PanicError. Nil stays nil.
func Coerce(v any) error {
	switch val := v.(type) {
	case nil:
		return nil
	case error:
		return val
	case string:
		return errors.New(val)
	case int:
		return errors.New(strconv.Itoa(val))
	case int32:
		return errors.New(strconv.FormatInt(int64(val), 10))
	case int64:
		return errors.New(strconv.FormatInt(val, 10))
	case uint:
		return errors.New(strconv.FormatUint(uint64(val), 10))
	default:
		return &PanicError{Value: v}
	}
}

// recovered converts a recover() value. Panicking with a string is a code
// bug, unlike returning one, so it keeps the stack.
func recovered(v any) error {
	if s, ok := v.(string); ok {
		return &PanicError{Value: s, Stack: debug.Stack()}
	}
	err := Coerce(v)
	var pe *PanicError
	if errors.As(err, &pe) && pe.Stack == nil {
		pe.Stack = debug.Stack()
	}
	return err
}
