package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Gateway
	CodeGatewayError:     "Venue gateway request failed",
	CodeGatewayUnsigned:  "Signed request attempted without credentials",
	CodeGatewayStatus:    "Venue responded with an error status",
	CodeGatewayWebSocket: "Venue websocket connection failed",

	// Parser
	CodeParserError:       "Failed to parse venue payload",
	CodeParserVenueStatus: "Venue payload reported an error status",

	// Wrapper
	CodeWrapperError: "Venue wrapper request failed",

	// Orderbook
	CodeNotInitialized: "Orderbook has not been initialized",
	CodeSymbolMismatch: "Delta symbol does not match orderbook symbol",
	CodeStaleDelta:     "Delta sequence is older than current snapshot",

	// Risk
	CodeCircuitOpen:  "Circuit breaker is open",
	CodeRiskRejected: "Signal rejected by risk manager",

	// Execution
	CodeExecutionFailed: "Order execution failed",
}
