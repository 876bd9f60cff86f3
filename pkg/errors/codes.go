package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
)

// Aliases used at call sites for readability.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// Exchange-Rate Module Error Codes
const (
	ErrCodeExchangeAuthorityUnavailable ErrorCode = "FX_001"
	ErrCodeExchangeQuoteNotFound        ErrorCode = "FX_002"
	ErrCodeExchangeCurrencyInvalid      ErrorCode = "FX_003"
	ErrCodeExchangeResponseMalformed    ErrorCode = "FX_004"
)

// Tax-Treatment Module Error Codes
const (
	ErrCodeTreatmentLookupFailed     ErrorCode = "TTC_001"
	ErrCodeTreatmentNotFound         ErrorCode = "TTC_002"
	ErrCodeTreatmentResponseInvalid  ErrorCode = "TTC_003"
	ErrCodeClassificationCodeInvalid ErrorCode = "TTC_004"
	ErrCodeOperationTypeInvalid      ErrorCode = "TTC_005"
)

// Product / Validation-Flow Error Codes
const (
	ErrCodeProductNotFound      ErrorCode = "PRD_001"
	ErrCodeProductLocked        ErrorCode = "PRD_002"
	ErrCodeProductQuantity      ErrorCode = "PRD_003"
	ErrCodeLookupAlreadyRunning ErrorCode = "PRD_004"
)

// Benefit Module Error Codes
const (
	ErrCodeBenefitRegionUnknown ErrorCode = "BEN_001"
	ErrCodeBenefitFOBInvalid    ErrorCode = "BEN_002"
)

// Costing Module Error Codes
const (
	ErrCodeCostInputInvalid ErrorCode = "CST_001"
)

// Classification-Advisor Error Codes
const (
	ErrCodeAdvisorUnavailable  ErrorCode = "ADV_001"
	ErrCodeAdvisorNoSuggestion ErrorCode = "ADV_002"
	ErrCodeAdvisorBadResponse  ErrorCode = "ADV_003"
)

// Simulation Module Error Codes
const (
	ErrCodeSimulationNotFound         ErrorCode = "SIM_001"
	ErrCodeSimulationSaveFailed       ErrorCode = "SIM_002"
	ErrCodeSimulationEventFailed      ErrorCode = "SIM_003"
	ErrCodeSimulationStoreUnavailable ErrorCode = "SIM_004"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,

	ErrCodeExchangeAuthorityUnavailable: http.StatusBadGateway,
	ErrCodeExchangeQuoteNotFound:        http.StatusNotFound,
	ErrCodeExchangeCurrencyInvalid:      http.StatusBadRequest,
	ErrCodeExchangeResponseMalformed:    http.StatusBadGateway,

	ErrCodeTreatmentLookupFailed:     http.StatusBadGateway,
	ErrCodeTreatmentNotFound:         http.StatusNotFound,
	ErrCodeTreatmentResponseInvalid:  http.StatusBadGateway,
	ErrCodeClassificationCodeInvalid: http.StatusBadRequest,
	ErrCodeOperationTypeInvalid:      http.StatusBadRequest,

	ErrCodeProductNotFound:      http.StatusNotFound,
	ErrCodeProductLocked:        http.StatusConflict,
	ErrCodeProductQuantity:      http.StatusBadRequest,
	ErrCodeLookupAlreadyRunning: http.StatusConflict,

	ErrCodeBenefitRegionUnknown: http.StatusBadRequest,
	ErrCodeBenefitFOBInvalid:    http.StatusBadRequest,

	ErrCodeCostInputInvalid: http.StatusBadRequest,

	ErrCodeAdvisorUnavailable:  http.StatusServiceUnavailable,
	ErrCodeAdvisorNoSuggestion: http.StatusNotFound,
	ErrCodeAdvisorBadResponse:  http.StatusBadGateway,

	ErrCodeSimulationNotFound:         http.StatusNotFound,
	ErrCodeSimulationSaveFailed:       http.StatusInternalServerError,
	ErrCodeSimulationEventFailed:      http.StatusInternalServerError,
	ErrCodeSimulationStoreUnavailable: http.StatusServiceUnavailable,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",

	ErrCodeExchangeAuthorityUnavailable: "exchange-rate authority unavailable",
	ErrCodeExchangeQuoteNotFound:        "no exchange quote in the fallback window",
	ErrCodeExchangeCurrencyInvalid:      "invalid currency code",
	ErrCodeExchangeResponseMalformed:    "malformed exchange-rate authority response",

	ErrCodeTreatmentLookupFailed:     "tax-treatment lookup failed",
	ErrCodeTreatmentNotFound:         "no tax treatment for classification code",
	ErrCodeTreatmentResponseInvalid:  "malformed tax-treatment response",
	ErrCodeClassificationCodeInvalid: "classification code must be exactly 8 digits",
	ErrCodeOperationTypeInvalid:      "operation type must be import or export",

	ErrCodeProductNotFound:      "product not found",
	ErrCodeProductLocked:        "product is locked by a validated classification",
	ErrCodeProductQuantity:      "product quantity must be greater than zero",
	ErrCodeLookupAlreadyRunning: "a classification lookup is already in flight",

	ErrCodeBenefitRegionUnknown: "unknown benefit region",
	ErrCodeBenefitFOBInvalid:    "FOB value must not be negative",

	ErrCodeCostInputInvalid: "invalid landed-cost input",

	ErrCodeAdvisorUnavailable:  "classification advisor unavailable",
	ErrCodeAdvisorNoSuggestion: "no classification suggestion found",
	ErrCodeAdvisorBadResponse:  "malformed completion-service response",

	ErrCodeSimulationNotFound:         "simulation not found",
	ErrCodeSimulationSaveFailed:       "failed to persist simulation",
	ErrCodeSimulationEventFailed:      "failed to publish simulation event",
	ErrCodeSimulationStoreUnavailable: "simulation store is not configured",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
