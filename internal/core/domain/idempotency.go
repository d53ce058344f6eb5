package domain

import "time"

// IdempotencyRecord maps a caller-supplied key to the response produced the
// first time the key was seen. Records are written at most once per key and
// never updated or expired.
type IdempotencyRecord struct {
	Key            string    `json:"key"`
	RequestDigest  string    `json:"requestDigest"` // SHA-256 of the originating request body
	ResponseBody   []byte    `json:"responseBody"`  // Cached response payload (JSON)
	ResponseStatus int       `json:"responseStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}
