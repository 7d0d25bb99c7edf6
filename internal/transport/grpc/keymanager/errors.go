package keymanagergrpc

import (
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
	"github.com/i-melnichenko/keys-manager/internal/service"
)

const (
	errorDomain      = "keysmanager"
	errorKindMetaKey = "error_kind"
)

func errorReason(code uint32) string {
	switch {
	case code == runtime.CodeMissingArgument:
		return "MISSING_ARGUMENT"
	case code == runtime.CodeInvalidArgument:
		return "INVALID_ARGUMENT"
	case errors.Is(&runtime.APIError{Code: code}, keymanager.ErrUnknownAPICommand):
		return "UNKNOWN_API_COMMAND"
	default:
		return "API_ERROR"
	}
}

// toGRPCStatus maps an invocation failure to a status. APIErrors become
// InvalidArgument carrying the error kind in an ErrorInfo detail.
func toGRPCStatus(err error) error {
	if code, ok := runtime.ErrorKind(err); ok {
		st := status.New(codes.InvalidArgument, err.Error())
		withInfo, detailErr := st.WithDetails(&errdetails.ErrorInfo{
			Reason:   errorReason(code),
			Domain:   errorDomain,
			Metadata: map[string]string{errorKindMetaKey: strconv.FormatUint(uint64(code), 10)},
		})
		if detailErr != nil {
			return st.Err()
		}
		return withInfo.Err()
	}
	if errors.Is(err, service.ErrExecute) {
		return status.Error(codes.Aborted, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// fromGRPCStatus restores the *runtime.APIError carried by a status, so
// callers can match error kinds with errors.Is.
func fromGRPCStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorDomain {
			continue
		}
		code, parseErr := strconv.ParseUint(info.GetMetadata()[errorKindMetaKey], 10, 32)
		if parseErr != nil {
			break
		}
		return fmt.Errorf("keymanager client: %s: %w", st.Message(), &runtime.APIError{Code: uint32(code)})
	}
	if st.Code() == codes.Aborted {
		return fmt.Errorf("keymanager client: %s: %w", st.Message(), service.ErrExecute)
	}
	return fmt.Errorf("keymanager client: %w", err)
}
