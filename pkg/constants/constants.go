package constants

import "github.com/go-playground/validator/v10"

type ContextKey string

const (
	TxKey        ContextKey = "pgx_tx"
	PoolKey      ContextKey = "pgx_pool"
	UserKey      ContextKey = "acting_user"
	LoggerKey    ContextKey = "logger"
	RequestIDKey ContextKey = "request_id"
)

// Validate is the process-wide validator instance used by DTO Ok() methods.
var Validate = validator.New()
