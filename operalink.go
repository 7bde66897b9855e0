package operalink

const (
	// DefaultURLPrefix is the production Opera Link REST endpoint.
	DefaultURLPrefix = "https://link.api.opera.com/rest"

	// DefaultOAuthURL is the Opera OAuth service all token exchanges go
	// through.
	DefaultOAuthURL = "https://auth.opera.com/service/oauth/"

	ContentTypeHeader = "Content-Type"
	ContentTypeValue  = "application/x-www-form-urlencoded"

	// TimeFormat is the wire format for all timestamp properties,
	// RFC 3339 restricted to second precision in UTC.
	TimeFormat = "2006-01-02T15:04:05Z"

	// APIOutputParam and APIMethodParam are the query/form parameters the
	// server dispatches on.
	APIOutputParam = "api_output"
	APIOutputJSON  = "json"
	APIMethodParam = "api_method"

	// api_method verbs accepted by every datatype endpoint.
	MethodCreate = "create"
	MethodUpdate = "update"
	MethodDelete = "delete"
	MethodTrash  = "trash"
	MethodMove   = "move"

	// relative_position values accepted by the move verb.
	PositionBefore = "before"
	PositionAfter  = "after"
	PositionInto   = "into"
)

// ValidRelativePosition reports whether p is a position the move verb
// accepts.
func ValidRelativePosition(p string) bool {
	switch p {
	case PositionBefore, PositionAfter, PositionInto:
		return true
	default:
		return false
	}
}
