package common

import (
	"errors"
	"fmt"

	"github.com/jvlcode/goblog/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Combine merges errors into one, dropping nils.
func Combine(errs ...error) error {
	var merged error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if merged == nil {
			merged = err
		} else {
			merged = fmt.Errorf("%v, %v", merged, err)
		}
	}
	return merged
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
