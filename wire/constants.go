package wire

// Verb represents an SSDB command verb (first block of a request).
type Verb string

// StatusType represents a response status token (first block of a response).
type StatusType string

// Command verbs
const (
	VerbAuth Verb = "auth"
	VerbSet  Verb = "set"
	VerbGet  Verb = "get"
	VerbDel  Verb = "del"
	VerbHSet Verb = "hset"
	VerbHGet Verb = "hget"
	VerbHDel Verb = "hdel"
	VerbIncr Verb = "incr"
	VerbInfo Verb = "info"
)

// Response status tokens.
//
// The status is the first block of every response. Statuses not listed
// here are treated as generic failures; the token is preserved verbatim
// for diagnostics.
const (
	// StatusOK indicates the operation succeeded.
	StatusOK StatusType = "ok"

	// StatusNotFound indicates the requested key does not exist.
	// Not an error for read operations.
	StatusNotFound StatusType = "not_found"

	// StatusNotAuth indicates the connection has not been authenticated.
	// Escalated to an AuthError for every command except auth itself.
	StatusNotAuth StatusType = "noauth"

	// StatusError indicates a generic server-side failure.
	StatusError StatusType = "error"

	// StatusFail indicates the operation was rejected by the server.
	StatusFail StatusType = "fail"

	// StatusClientError indicates the server rejected the request as malformed.
	StatusClientError StatusType = "client_error"
)
