package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/apilab/users-api/internal/apierr"
)

// decodeBody reads the request body as a JSON object. Numbers are kept as
// json.Number so the validator can accept both numeric and numeric-string
// fields. An absent, unparseable or null body fails with MISSING_BODY.
func decodeBody(r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return nil, apierr.MissingBody()
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, apierr.MissingBody()
	}
	if data == nil {
		return nil, apierr.MissingBody()
	}
	return data, nil
}
