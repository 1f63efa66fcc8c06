package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes this backend cares about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// ErrorInfo is a parsed error: a machine code plus a safe default message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a storage or service error into an ErrorInfo the
// caller can act on. Sensitive driver detail stays out of the message;
// constraint names are inspected to pick the field-specific code.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch string(pgErr.Code) {
		case pgUniqueViolation:
			return parseUniqueViolation(pgErr)
		case pgForeignKeyViolation:
			return ErrorInfo{
				Code:    ResourceNotFound,
				Message: "Referenced record does not exist",
			}
		case pgNotNullViolation:
			return ErrorInfo{
				Code:    ValidationRequired,
				Message: "A required field is missing",
			}
		}
	}

	if isConnectivityError(err) {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is unavailable, please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(context)}
}

func parseUniqueViolation(pgErr *pq.Error) ErrorInfo {
	constraint := strings.ToLower(pgErr.Constraint)

	// Duplicate registration
	if strings.Contains(constraint, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "The email is taken."}
	}

	// Two writers raced on the same (user, product) cart slot; the caller
	// should re-read the cart and retry.
	if strings.Contains(constraint, "idx_cart_user_product") {
		return ErrorInfo{Code: ResourceConflict, Message: "Cart changed concurrently, please retry"}
	}

	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
}

func isConnectivityError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout")
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "order") {
		return "Order not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart entry not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}

	return "Requested record not found"
}

func defaultMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "register") {
		return "Failed to create the record, please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Failed to update the record, please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Failed to delete the record, please try again later"
	}
	if strings.Contains(contextLower, "checkout") {
		return "Checkout failed, please try again later"
	}

	return "Something went wrong, please try again later"
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, the signal for concurrent-write conflicts.
func IsUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return string(pgErr.Code) == pgUniqueViolation
	}
	// sqlite (tests) spells the same condition differently
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// ParseAndRespond parses err and writes the response in one step
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
