package handler

import "strings"

const (
	detailValidation          = "One or more validation errors occurred. Please check the 'errors' field for details."
	detailConstraintViolation = "Request parameters or path variables failed validation."
	detailInternal            = "An unexpected error occurred. Please try again later or contact support if the problem persists."
	detailBadCredentials      = "Invalid email or password. Please check your credentials and try again."
	detailAccountDisabled     = "Your account has been disabled. Please contact support for assistance."
	detailAccountLocked       = "Your account has been locked due to too many failed attempts. Please try again later or contact support."
	detailUnauthenticated     = "Authentication is required to access this resource. Please provide valid credentials."
	detailAccessDenied        = "You do not have permission to access this resource."
	detailRateLimited         = "Too many requests. Please wait before retrying."

	detailMalformedBody      = "The request body is malformed or contains invalid JSON. Please verify the request format."
	detailBodyMissing        = "Request body is required but was not provided."
	detailBodyInvalidType    = "Invalid value type in request body. Please check data types."
	detailBodyInvalidSyntax  = "Invalid JSON format. Please verify the JSON syntax."
	detailIntegrity          = "A data integrity constraint was violated. Please verify your request data."
	detailIntegrityDuplicate = "A resource with the same unique identifier already exists."
	detailIntegrityReference = "The operation references a resource that does not exist."
	detailIntegrityRequired  = "A required field is missing or null."
	detailIntegrityEventDate = "Event date is required and must have a valid format (e.g., 2025-12-15T20:00:00)."
	detailIntegrityVenueID   = "Venue ID is required and must reference an existing venue."
)

// sniffRule maps any of a set of substrings to a detail phrase.
type sniffRule struct {
	needles []string
	detail  string
}

// Order matters: "unexpected EOF" must be tried before the bare "EOF".
var malformedBodyRules = []sniffRule{
	{needles: []string{"cannot unmarshal", "parsing time"}, detail: detailBodyInvalidType},
	{needles: []string{"invalid character", "unexpected end of JSON input", "unexpected EOF"}, detail: detailBodyInvalidSyntax},
	{needles: []string{"EOF"}, detail: detailBodyMissing},
}

// Matched case-insensitively. Driver-specific; swap the table when the
// backing store changes.
var integrityRules = []sniffRule{
	{needles: []string{"unique constraint", "unique index", "duplicate key"}, detail: detailIntegrityDuplicate},
	{needles: []string{"foreign key constraint", "fk_"}, detail: detailIntegrityReference},
	{needles: []string{"not-null constraint", "null not allowed"}, detail: detailIntegrityRequired},
	{needles: []string{"event_date"}, detail: detailIntegrityEventDate},
	{needles: []string{"venue_id"}, detail: detailIntegrityVenueID},
}

// MalformedBodyDetail refines the generic malformed-body detail from the
// decoder's error message. First match wins.
func MalformedBodyDetail(msg string) string {
	return sniff(malformedBodyRules, msg, false, detailMalformedBody)
}

// IntegrityDetail refines the generic integrity detail from the driver's
// error message. The message itself is never returned.
func IntegrityDetail(msg string) string {
	return sniff(integrityRules, msg, true, detailIntegrity)
}

// ExtractFieldName returns the segment after the last dot of a property path,
// or the whole path when it has no usable dot.
func ExtractFieldName(path string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[i+1:]
	}
	return path
}

func sniff(rules []sniffRule, msg string, foldCase bool, fallback string) string {
	if msg == "" {
		return fallback
	}
	if foldCase {
		msg = strings.ToLower(msg)
	}
	for _, r := range rules {
		for _, n := range r.needles {
			if foldCase {
				n = strings.ToLower(n)
			}
			if strings.Contains(msg, n) {
				return r.detail
			}
		}
	}
	return fallback
}
