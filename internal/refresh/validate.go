package refresh

import (
	"encoding/json"
	"fmt"
)

// ValidateJSON checks that body is a single well-formed JSON value.
// It does not inspect the document's structure.
func ValidateJSON(body []byte) error {
	if !json.Valid(body) {
		return fmt.Errorf("%w (%d bytes)", ErrInvalidPayload, len(body))
	}
	return nil
}
