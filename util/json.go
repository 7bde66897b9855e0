package util

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// ReadJSONInto decodes a JSON body into data. An empty or whitespace-only
// body is not an error; data is left untouched.
func ReadJSONInto(r io.ReadCloser, data interface{}) error {
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(b, data), "unmarshalling JSON")
}
