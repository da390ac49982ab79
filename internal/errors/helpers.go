package errors

import (
	"errors"
	"strings"
)

// GetCode returns the code of the outermost *Error in the chain, CodeOK for
// nil and CodeInternal for plain errors
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMessage returns the message meant for users, without the cause chain
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// GetMessageChain joins the messages of every *Error in the chain, outermost
// first, e.g. "Generator failed: Dir nexo-items not found". Plain causes are
// left out.
func GetMessageChain(err error) string {
	if err == nil {
		return ""
	}

	var messages []string
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if e, ok := cur.(*Error); ok && e.Message != "" {
			messages = append(messages, e.Message)
		}
	}
	if len(messages) == 0 {
		return err.Error()
	}
	return strings.Join(messages, ": ")
}

func GetMeta(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

func IsCanceled(err error) bool { return GetCode(err) == CodeCanceled }
