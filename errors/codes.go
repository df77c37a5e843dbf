package errors

// ErrorCode identifies an error category in API responses
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_INVALID_PAYLOAD

	ErrorCode_ACTION_ITEM_NOT_FOUND
	ErrorCode_INVALID_STATUS
	ErrorCode_INVALID_PRIORITY
	ErrorCode_INVALID_TRANSITION
	ErrorCode_BATCH_DUPLICATE_IDS
	ErrorCode_BATCH_TOO_LARGE

	ErrorCode_MEETING_NOT_FOUND
	ErrorCode_MEETING_NO_CONTENT

	ErrorCode_EXTRACTION_IN_PROGRESS
	ErrorCode_EXTRACTION_FAILED

	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:          "UNKNOWN",
	ErrorCode_INTERNAL:         "INTERNAL",
	ErrorCode_INVALID_ARGUMENT: "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:        "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:  "INVALID_PAYLOAD",

	ErrorCode_ACTION_ITEM_NOT_FOUND: "ACTION_ITEM_NOT_FOUND",
	ErrorCode_INVALID_STATUS:        "INVALID_STATUS",
	ErrorCode_INVALID_PRIORITY:      "INVALID_PRIORITY",
	ErrorCode_INVALID_TRANSITION:    "INVALID_TRANSITION",
	ErrorCode_BATCH_DUPLICATE_IDS:   "BATCH_DUPLICATE_IDS",
	ErrorCode_BATCH_TOO_LARGE:       "BATCH_TOO_LARGE",

	ErrorCode_MEETING_NOT_FOUND:  "MEETING_NOT_FOUND",
	ErrorCode_MEETING_NO_CONTENT: "MEETING_NO_CONTENT",

	ErrorCode_EXTRACTION_IN_PROGRESS: "EXTRACTION_IN_PROGRESS",
	ErrorCode_EXTRACTION_FAILED:      "EXTRACTION_FAILED",

	ErrorCode_DB_CONNECTION_FAILED:     "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED: "INTEGRATION_CACHE_FAILED",
}

// String returns the wire name for the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
