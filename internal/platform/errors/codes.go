// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Seed errors
	CodeSeedInvalid Code = "SEED_INVALID"

	// Input data errors
	CodeMapDataMissing   Code = "MAPDATA_MISSING"
	CodeMapDataMalformed Code = "MAPDATA_MALFORMED"
	CodeTableMissing     Code = "TABLE_MISSING"
	CodeSettingsInvalid  Code = "SETTINGS_INVALID"
	CodeFilterInvalid    Code = "FILTER_INVALID"

	// Session errors
	CodeAlreadyRandomized Code = "ALREADY_RANDOMIZED"
	CodeIDOutOfRange      Code = "ID_OUT_OF_RANGE"
	CodePassFailed        Code = "PASS_FAILED"

	// Spoiler log errors
	CodeRunNotFound Code = "RUN_NOT_FOUND"
)
