package models

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// AnswerSchemaJSON is the constrained-output schema the direct-model
// adapter sends with every request: exactly the three answer keys, with
// 1-6 probable conditions.
const AnswerSchemaJSON = `{
  "type": "object",
  "properties": {
    "probable_conditions": {
      "type": "array",
      "items": {"type": "string"},
      "minItems": 1,
      "maxItems": 6
    },
    "recommendations": {"type": "string"},
    "disclaimer": {"type": "string"}
  },
  "required": ["probable_conditions", "recommendations", "disclaimer"],
  "additionalProperties": false
}`

// answerValidationSchemaJSON is the looser contract used when grading.
// A response only needs the three keys with the right types to count as
// valid; empty condition lists and extra keys are scored by the
// component rules, not rejected at parse time.
const answerValidationSchemaJSON = `{
  "type": "object",
  "properties": {
    "probable_conditions": {
      "type": "array",
      "items": {"type": "string"}
    },
    "recommendations": {"type": "string"},
    "disclaimer": {"type": "string"}
  },
  "required": ["probable_conditions", "recommendations", "disclaimer"]
}`

var answerValidationSchema = mustCompileSchema("answer_validation.json", answerValidationSchemaJSON)

func mustCompileSchema(name, schemaJSON string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		panic(err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// ParsedAnswer is the validated decode of a raw result's text. Valid is
// false when the text is not JSON or is missing a required key; in that
// state the field values are zero and must not be trusted.
type ParsedAnswer struct {
	ProbableConditions []string `json:"probable_conditions"`
	Recommendations    string   `json:"recommendations"`
	Disclaimer         string   `json:"disclaimer"`
	Valid              bool     `json:"-"`
}

// ParseAnswer decodes raw provider output into a ParsedAnswer. An invalid
// answer is a state, not an error: callers score it as such instead of
// aborting.
func ParseAnswer(raw string) ParsedAnswer {
	value, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return ParsedAnswer{}
	}
	if err := answerValidationSchema.Validate(value); err != nil {
		return ParsedAnswer{}
	}

	var pa ParsedAnswer
	if err := json.Unmarshal([]byte(raw), &pa); err != nil {
		return ParsedAnswer{}
	}
	pa.Valid = true
	return pa
}
