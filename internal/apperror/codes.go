package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Gateway errors - venue REST/WS transport layer.
const (
	CodeGatewayError        Code = "GATEWAY_ERROR"
	CodeGatewayUnsigned     Code = "GATEWAY_UNSIGNED"      // signed call attempted without credentials
	CodeGatewayStatus       Code = "GATEWAY_STATUS_ERROR"  // venue responded with HTTP status >= 400
	CodeGatewayWebSocket    Code = "GATEWAY_WEBSOCKET_ERROR"
)

// Parser errors - decoding/validating venue payloads.
const (
	CodeParserError       Code = "PARSER_ERROR"
	CodeParserVenueStatus Code = "PARSER_VENUE_STATUS" // venue payload itself signals an error
)

// Wrapper errors - venue-specific request/response shaping.
const (
	CodeWrapperError Code = "WRAPPER_ERROR"
)

// Orderbook errors.
const (
	CodeNotInitialized   Code = "NOT_INITIALIZED"
	CodeSymbolMismatch   Code = "SYMBOL_MISMATCH"
	CodeStaleDelta       Code = "STALE_DELTA"
)

// Risk errors.
const (
	CodeCircuitOpen  Code = "CIRCUIT_OPEN"
	CodeRiskRejected Code = "RISK_REJECTED"
)

// Execution errors.
const (
	CodeExecutionFailed Code = "EXECUTION_FAILED"
)
