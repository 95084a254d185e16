package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code, so values built with WithError compare equal
// to the predeclared error they derive from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrMissingFields = &AppError{
		Code:       "MISSING_FIELDS",
		Message:    "Missing required fields",
		StatusCode: 400,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid or missing credentials",
		StatusCode: 401,
	}

	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Email or password is incorrect",
		StatusCode: 401,
	}

	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "Access denied",
		StatusCode: 403,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Message:    "User not found",
		StatusCode: 404,
	}

	ErrUserExists = &AppError{
		Code:       "USER_ALREADY_EXISTS",
		Message:    "User already exists",
		StatusCode: 409,
	}

	ErrNoEnrolledFaces = &AppError{
		Code:       "NO_ENROLLED_FACES",
		Message:    "No registered faces found. Please register your face first.",
		StatusCode: 401,
	}

	ErrFaceNotRecognized = &AppError{
		Code:       "FACE_NOT_RECOGNIZED",
		Message:    "Face not recognized. Please try again.",
		StatusCode: 401,
	}

	ErrInvalidDescriptor = &AppError{
		Code:       "INVALID_DESCRIPTOR",
		Message:    "Face descriptor is malformed",
		StatusCode: 400,
	}

	ErrResultNotFound = &AppError{
		Code:       "RESULT_NOT_FOUND",
		Message:    "Result not found",
		StatusCode: 404,
	}

	ErrQuestionExists = &AppError{
		Code:       "QUESTION_ALREADY_EXISTS",
		Message:    "Question already exists for this topic",
		StatusCode: 409,
	}

	ErrAssessmentNotFound = &AppError{
		Code:       "ASSESSMENT_NOT_FOUND",
		Message:    "No assessment configuration found",
		StatusCode: 404,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrGenerationFailed = &AppError{
		Code:       "GENERATION_FAILED",
		Message:    "Failed to generate questions",
		StatusCode: 502,
	}
)
