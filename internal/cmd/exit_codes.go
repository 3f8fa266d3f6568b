package cmd

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/spf13/pflag"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/apierr"
)

const (
	exitOK          = 0
	exitGeneric     = 1
	exitUsage       = 2
	exitAuth        = 3
	exitNotFound    = 4
	exitRateLimited = 5
	exitServer      = 6
	exitNetwork     = 7
	exitConfig      = 8
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, pflag.ErrHelp) || errors.Is(err, errDryRun) {
		return exitOK
	}
	if handled, ok := err.(*handledError); ok {
		if handled.exitCode != 0 {
			return handled.exitCode
		}
		err = handled.err
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return exitConfig
	}
	if code := exitCodeFromStructured(err); code != 0 {
		return code
	}
	if isUsageError(err) {
		return exitUsage
	}
	if isNetworkError(err) {
		return exitNetwork
	}
	return exitGeneric
}

func exitCodeFromStructured(err error) int {
	structured := apierr.StructuredErrorFromError(err)
	if structured == nil {
		return 0
	}
	switch structured.Code {
	case apierr.ErrUnauthorized, apierr.ErrForbidden:
		return exitAuth
	case apierr.ErrNotFound:
		return exitNotFound
	case apierr.ErrRateLimited:
		return exitRateLimited
	case apierr.ErrServerError:
		return exitServer
	case apierr.ErrTimeout, apierr.ErrNetwork:
		return exitNetwork
	case apierr.ErrBadRequest, apierr.ErrValidation, apierr.ErrConflict:
		return exitUsage
	default:
		return 0
	}
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if api.IsTransportError(err) || api.IsURLParseError(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isUsageError(err error) bool {
	if err == nil {
		return false
	}
	if api.IsEncodingError(err) || api.IsInvalidHeaderError(err) || api.IsJSONError(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	indicators := []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"unknown operation",
		"unknown parameter",
		"flag needs an argument",
		"accepts ",
		"requires",
		"invalid argument",
		"invalid ",
		"must be",
		"is required",
		"missing",
		"mutually exclusive",
	}
	for _, indicator := range indicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
