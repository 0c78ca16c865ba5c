package config

// manifestSchema is the JSON Schema every manifest is checked against
// before it is decoded.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "keys"],
  "additionalProperties": false,
  "properties": {
    "version": { "type": "integer", "const": 1 },
    "keys": {
      "type": "object",
      "minProperties": 1,
      "propertyNames": { "pattern": "^[A-Za-z0-9_.-]+$" },
      "additionalProperties": { "$ref": "#/definitions/key" }
    }
  },
  "definitions": {
    "key": {
      "type": "object",
      "required": ["size", "from"],
      "additionalProperties": false,
      "properties": {
        "size": { "type": "integer", "enum": [16, 24, 32, 48, 64] },
        "encoding": { "type": "string", "enum": ["raw", "hex", "base64"] },
        "from": { "$ref": "#/definitions/from" }
      }
    },
    "from": {
      "type": "object",
      "minProperties": 1,
      "maxProperties": 1,
      "additionalProperties": false,
      "properties": {
        "env": { "type": "string", "minLength": 1 },
        "file": { "type": "string", "minLength": 1 },
        "keyring": {
          "type": "object",
          "required": ["service", "account"],
          "additionalProperties": false,
          "properties": {
            "service": { "type": "string", "minLength": 1 },
            "account": { "type": "string", "minLength": 1 }
          }
        },
        "aws": {
          "type": "object",
          "required": ["secret_id"],
          "additionalProperties": false,
          "properties": {
            "secret_id": { "type": "string", "minLength": 1 },
            "version_stage": { "type": "string" },
            "region": { "type": "string" },
            "endpoint": { "type": "string" },
            "timeout_ms": { "type": "integer", "minimum": 0 }
          }
        }
      }
    }
  }
}`
