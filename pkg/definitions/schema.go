package definitions

// definitionSchema is the JSON Schema every definition document must satisfy
// before it reaches the structural validator. Schema validation catches shape
// problems (wrong types, missing fields); ValidateDefinition catches graph
// problems (dangling edges, duplicate keys).
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "states"],
  "properties": {
    "id": {
      "type": "string",
      "minLength": 1
    },
    "name": {
      "type": "string",
      "minLength": 3
    },
    "version": {
      "type": "integer",
      "minimum": 0
    },
    "states": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["key", "label", "stage", "order"],
        "properties": {
          "key": {
            "type": "string",
            "minLength": 1
          },
          "label": {
            "type": "string",
            "minLength": 1
          },
          "stage": {
            "type": "string",
            "enum": ["active", "success", "failed", "pending"]
          },
          "order": {
            "type": "integer"
          },
          "next_states": {
            "type": "array",
            "items": {
              "type": "string"
            }
          },
          "requires_note": {
            "type": "boolean"
          },
          "automated": {
            "type": "boolean"
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`
