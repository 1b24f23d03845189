package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/deppfellow/colleague-finance-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds codes like BUDGET_ADJUSTMENT_ALREADY_EXISTS from the
// table name and violation type.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage phrases a constraint failure for API clients.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		message := fmt.Sprintf("A %s with this identifier already exists", entityName)
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			message = strings.ReplaceAll(message, "identifier", humanizeText(column))
		}
		return message

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidText:
		return "One or more values have an invalid format"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers the column of a foreign key ("vendor_id" -> "Vendor"),
// then the singular table name, then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeySuffix = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from constraint names
// following "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeySuffix.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// Translate classifies a database error into an errs kind:
//
//	no rows                         -> errs.ErrNotFound ("<entity> not found")
//	constraint or format violations -> errs.ErrInvalidArgument
//	anything else                   -> errs.ErrRepository
//
// Errors that already carry a kind are returned unchanged. entity names the
// record for not-found messages, e.g. "buyer".
func Translate(err error, entity string) error {
	if err == nil {
		return nil
	}

	var kindErr *errs.Error
	if errors.As(err, &kindErr) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if entity == "" {
			entity = "record"
		}
		return errs.Wrap(errs.ErrNotFound, err, humanizeText(entity)+" not found")
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		switch sqlErr.Code {
		case ForeignKeyViolation, UniqueViolation, NotNullViolation, CheckViolation, InvalidText:
			return errs.Wrap(errs.ErrInvalidArgument, sqlErr, formatUserFriendlyMessage(sqlErr))
		default:
			return errs.Wrap(errs.ErrRepository, sqlErr, formatUserFriendlyMessage(sqlErr))
		}
	}

	return errs.Wrap(errs.ErrRepository, err, "database error")
}

// HandleError converts an error that reached the global error handler
// without being translated into an HTTPError.
//
// Handlers translate service errors themselves; this is the safety net for
// middleware and system routes.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation, UniqueViolation, CheckViolation, InvalidText:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil).WithCause(err)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil).WithCause(err)

		default:
			return errs.NewInternalServerError().WithCause(err)
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows), errors.Is(err, errs.ErrNotFound):
		return errs.NewNotFoundError("Resource not found", false, nil).WithCause(err)
	case errors.Is(err, errs.ErrPermission):
		return errs.NewForbiddenError("Insufficient permissions.", false).WithCause(err)
	case errors.Is(err, errs.ErrSessionExpired):
		return errs.NewUnauthorizedError("Your previous session has expired and is no longer valid.", true).WithCause(err)
	case errors.Is(err, errs.ErrInvalidArgument):
		return errs.NewBadRequestError("Invalid argument.", false, nil, nil, nil).WithCause(err)
	}

	return errs.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).WithCause(err)
}
