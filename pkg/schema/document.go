package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const documentSchemaURL = "https://callflow.dev/schemas/graph.json"

// documentSchemaJSON describes a call-flow graph document.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["nodes"],
  "additionalProperties": false,
  "properties": {
    "startNode": {"type": "string", "minLength": 1},
    "nodes": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {"$ref": "#/$defs/node"}
    },
    "pricing": {"$ref": "#/$defs/table"},
    "conditionalInserts": {"$ref": "#/$defs/table"},
    "redirects": {"type": "array", "items": {"$ref": "#/$defs/redirect"}}
  },
  "$defs": {
    "table": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {"type": "string"}
      }
    },
    "node": {
      "type": "object",
      "required": ["script"],
      "additionalProperties": false,
      "properties": {
        "id": {"type": "string"},
        "kind": {"enum": ["permission", "intro", "pitch", "details", "qualifier", "transition", "close", "success", "reschedule"]},
        "script": {"type": "string"},
        "variants": {"type": "object", "additionalProperties": {"type": "string"}},
        "options": {"type": "array", "items": {"$ref": "#/$defs/option"}}
      }
    },
    "option": {
      "type": "object",
      "required": ["text"],
      "additionalProperties": false,
      "properties": {
        "text": {"type": "string", "minLength": 1},
        "next": {"type": "string"},
        "set": {"$ref": "#/$defs/patch"},
        "visibleWhen": {"enum": ["is55Plus", "eventSale"]}
      }
    },
    "patch": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "leadType": {"enum": ["wireless", "fiber", "both", "upgrades", "unknown", "", null]},
        "is55Plus": {"type": "boolean"},
        "upgradeType": {"enum": ["iphone", "android", "not_sure", "", null]},
        "eventSale": {"type": "boolean"},
        "customerName": {"type": ["string", "null"]},
        "repName": {"type": ["string", "null"]},
        "notes": {"type": ["string", "null"]},
        "visitType": {"enum": ["store", "mobile"]},
        "appointmentTime": {"$ref": "#/$defs/timeSlot"},
        "callbackTime": {"$ref": "#/$defs/timeSlot"},
        "rescheduleTime": {"$ref": "#/$defs/timeSlot"},
        "outcome": {"enum": ["booked", "callback", "not_interested", "no_answer", "voicemail", "wrong_number", "", null]}
      }
    },
    "timeSlot": {
      "enum": ["today_morning", "today_afternoon", "today_evening", "tomorrow", "tomorrow_morning", "tomorrow_afternoon", "this_week", "next_week", "", null]
    },
    "redirect": {
      "type": "object",
      "required": ["target", "to"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string"},
        "target": {"type": "string", "minLength": 1},
        "when": {"type": "string"},
        "to": {"type": "string", "minLength": 1}
      }
    }
  }
}`

var documentSchema = mustCompileDocumentSchema()

func mustCompileDocumentSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(documentSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("unmarshal graph schema: %v", err))
	}
	if err := c.AddResource(documentSchemaURL, doc); err != nil {
		panic(fmt.Sprintf("add graph schema resource: %v", err))
	}
	sch, err := c.Compile(documentSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile graph schema: %v", err))
	}
	return sch
}

// DocumentSchema returns the JSON Schema of graph documents.
func DocumentSchema() []byte {
	return []byte(documentSchemaJSON)
}

// DecodeDocument parses a YAML or JSON graph document into a generic value
// suitable for ValidateDocument.
func DecodeDocument(raw []byte) (any, error) {
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if generic == nil {
		return nil, errors.New("parse document: empty document")
	}
	// Round-trip through JSON so numbers and maps take the shapes the
	// validator expects.
	data, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	return doc, nil
}

// ValidateDocument checks a decoded document against the graph schema.
// All leaf failures are reported in a single *AggregateError.
func ValidateDocument(doc any) error {
	err := documentSchema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &AggregateError{Errors: []error{&ValidationError{Reason: err.Error()}}}
	}
	var errs []error
	for _, cause := range flattenValidationErrors(ve) {
		errs = append(errs, &ValidationError{
			Path:   strings.Join(cause.InstanceLocation, "/"),
			Reason: fmt.Sprintf("%v", cause.ErrorKind),
		})
	}
	return &AggregateError{Errors: errs}
}

func flattenValidationErrors(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var flat []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
