// Package output renders check reports and ledger trees as JSON or styled text.
package output

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
)

// ToJSON serializes a report or tree to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Schema returns the JSON schema of the check report written by ToJSON.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v finsum.Result
	return json.MarshalIndent(reflector.Reflect(v), "", "  ")
}
