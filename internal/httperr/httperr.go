package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsExclusionConflict reports whether the reservations overlap constraint rejected a write.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// Translate turns store-level errors into domain errors. Unknown errors pass through.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var be BusinessError
	switch {
	case errors.As(err, &be):
		return be
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrBusiness(CodeNotFound)
	case IsUniqueViolation(err):
		return ErrBusiness(CodeDuplicate)
	case IsExclusionConflict(err):
		return ErrBusiness(CodeSlotUnavailable)
	}
	return err
}

func Write(c *gin.Context, status int, code, message string) {
	httpresp.Fail(c, status, httpresp.ErrorBody{Code: code, Message: message})
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, StatusFor(CodeUnauthorized), CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, StatusFor(code), code, message)
}

// Respond writes err as an error envelope. Anything that is not a domain error is
// logged and reported as a generic 500.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be BusinessError
	if errors.As(Translate(err), &be) {
		msg := be.Message
		if msg == "" {
			msg = defaultMessage(be.Code)
		}
		httpresp.Fail(c, StatusFor(be.Code), httpresp.ErrorBody{
			Code:    be.Code,
			Message: msg,
			Details: be.Details,
		})
		return
	}

	if log != nil {
		log.Error("unhandled error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	Write(c, StatusFor(CodeInternal), CodeInternal, defaultMessage(CodeInternal))
}
