package errors

// Code classifies an AppError. INVALID_ARGUMENT is a validation failure,
// ALREADY_EXISTS a duplicate, NOT_FOUND a missing record; INTERNAL and
// DEADLINE_EXCEEDED are backend failures.
type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeNotFound         Code = "NOT_FOUND"
	CodeAlreadyExists    Code = "ALREADY_EXISTS"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeInternal         Code = "INTERNAL"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
)
