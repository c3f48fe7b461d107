package gateway

import (
	"encoding/json"
	"strings"

	"github.com/mustso/portal/internal/pkg/apperrors"
)

// decodeError turns a non-2xx body into an APIError. A "message" key wins;
// otherwise every field whose value is a string or a list is kept as a
// field error; anything else falls back to the status line.
func decodeError(status int, raw []byte, isJSON bool) *apperrors.APIError {
	if !isJSON {
		return apperrors.NewAPIError(status, "", nil)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return apperrors.NewAPIError(status, "", nil)
	}

	var message string
	if rawMsg, ok := body["message"]; ok {
		_ = json.Unmarshal(rawMsg, &message)
	}

	fields := make(map[string][]string)
	for key, value := range body {
		if key == "message" {
			continue
		}
		if key == "errors" {
			// {"success": false, "errors": {...}, "message": "..."} from registration
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(value, &nested); err == nil {
				for field, v := range nested {
					if msgs := fieldMessages(v); len(msgs) > 0 {
						fields[field] = msgs
					}
				}
				continue
			}
		}
		if msgs := fieldMessages(value); len(msgs) > 0 {
			fields[key] = msgs
		}
	}
	if len(fields) == 0 {
		fields = nil
	}

	return apperrors.NewAPIError(status, message, fields)
}

// fieldMessages reads a string or a list value. Non-string list entries are
// kept in their JSON form so nothing is dropped.
func fieldMessages(raw json.RawMessage) []string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return []string{s}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				msgs = append(msgs, s)
				continue
			}
			msgs = append(msgs, string(item))
		}
		return msgs
	default:
		return nil
	}
}
