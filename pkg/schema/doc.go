// Package schema describes registered term meta as OpenAPI 3 schemas and
// validates JSON payloads against them.
package schema
