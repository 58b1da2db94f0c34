// internal/status/constants.go
package status

// Health codes reported for a watched device.
// These values are exported as gauges and MUST NOT change meaning.

// HealthUnknown represents the boot state before the first poll.
const HealthUnknown uint16 = 0

// HealthOK represents a device answering every poll.
const HealthOK uint16 = 1

// HealthError represents a device whose last poll failed.
const HealthError uint16 = 2

// MaxSecondsInError caps the seconds-in-error counter; it MUST NOT wrap.
const MaxSecondsInError = 65535

// GenericErrorCode is reported when a failure carries no code of its own.
const GenericErrorCode uint16 = 1
