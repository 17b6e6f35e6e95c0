// internal/workers/booking/send-approval-email/validation.go
package sendapprovalemail

import (
	"fmt"
	"strings"

	"parkhub-notifier/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// inputSchema guards the webhook boundary. It enforces types and timestamp
// shapes on fields that are present, nothing more: a missing or malformed
// status flows into the filter and fails the transition check there, as a
// no-op rather than an error.
const inputSchema = `{
	"type": "object",
	"required": ["record", "old_record"],
	"properties": {
		"type": {"type": "string"},
		"table": {"type": "string"},
		"schema": {"type": "string"},
		"record": {
			"type": "object",
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"user_id": {"type": "string", "minLength": 1},
				"user_name": {"type": "string"},
				"vehicle_number": {"type": "string"},
				"vehicle_type": {"type": "string"},
				"duration": {"type": "integer", "minimum": 0},
				"status": {"type": "string"},
				"booking_start_time": {"type": "string", "format": "date-time"},
				"booking_end_time": {"type": "string", "format": "date-time"},
				"slot_id": {"type": "string"}
			}
		},
		"old_record": {
			"type": "object",
			"properties": {
				"status": {"type": "string"}
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(inputSchema)

// ValidateInput checks the raw webhook body against the input schema.
func ValidateInput(body []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.NewPayloadInvalidError(err.Error())
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return errors.NewPayloadInvalidError(strings.Join(details, "; "))
	}

	return nil
}
