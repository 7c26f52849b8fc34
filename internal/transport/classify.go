package transport

import "fmt"

// Classify builds the error for a non-success response. The message is taken,
// in order, from a non-empty text body or JSON string, a string "message"
// field, a string "error" field, the compact JSON form of a non-empty body,
// and finally "Error <status>".
func Classify(parsed ParsedBody, status int) *ErrorInfo {
	return &ErrorInfo{
		Kind:    KindHTTPStatus,
		Status:  status,
		Message: errorMessage(parsed, status),
	}
}

func errorMessage(parsed ParsedBody, status int) string {
	fallback := fmt.Sprintf("Error %d", status)
	switch parsed.Kind {
	case BodyText:
		if parsed.Text != "" {
			return parsed.Text
		}
		return fallback
	case BodyJSON:
		switch value := parsed.JSON.(type) {
		case nil:
			return fallback
		case string:
			if value != "" {
				return value
			}
			return fallback
		case map[string]any:
			if msg, ok := nonEmptyString(value["message"]); ok {
				return msg
			}
			if msg, ok := nonEmptyString(value["error"]); ok {
				return msg
			}
			if len(value) == 0 {
				return fallback
			}
		case []any:
			if len(value) == 0 {
				return fallback
			}
		}
		return compactJSON(parsed.JSON)
	default:
		return fallback
	}
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
