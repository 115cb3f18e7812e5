// Package api holds the backend API description served and enforced by the
// built-in development backend.
package api

import _ "embed"

// SpecYAML is the OpenAPI document for the backend HTTP API.
//
//go:embed openapi.yaml
var SpecYAML []byte
