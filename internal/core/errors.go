package core

import "errors"

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrInvalidArguments  = errors.New("invalid action arguments")
	ErrRunTimeout        = errors.New("assistant run timed out")
	ErrRunFailed         = errors.New("assistant run failed")
	ErrEmptyReply        = errors.New("assistant returned no reply")
	ErrInputTooLong      = errors.New("input exceeds token limit")
	ErrEmptyInput        = errors.New("empty input")
)
