// Package schemas embeds the JSON Schemas for the documents this tool reads.
package schemas

import _ "embed"

// ResumeSchemaFile is the schema's file name within this directory.
const ResumeSchemaFile = "resume.schema.json"

// Resume is the JSON Schema for resume.json.
//
//go:embed resume.schema.json
var Resume []byte
