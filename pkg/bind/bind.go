// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/validate"
)

const defaultBodyLimit = 4 << 20 // 4 MB

func bodyLimit() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON decodes r.Body into dest and runs the struct's validate tags.
// The body is capped at MAX_BODY_BYTES.
//
// A non-nil map means validation failures the handler should report as
// 422; a non-nil error means the body itself was unusable (malformed
// JSON or over the size cap).
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, bodyLimit())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", tooBig.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
