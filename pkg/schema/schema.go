package schema

import (
	"context"
	"fmt"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-termmeta/pkg/field"
)

// Extension keys carried on each property.
const (
	ExtensionType = "x-termmeta-type"
	ExtensionMin  = "x-termmeta-minimum"
	ExtensionMax  = "x-termmeta-maximum"
	ExtensionStep = "x-termmeta-step"
)

// numberPattern accepts the empty string (which deletes the entry) or a
// plain decimal.
const numberPattern = `^(-?[0-9]+(\.[0-9]+)?)?$`

// FieldSource provides registered taxonomies and their configurations.
type FieldSource interface {
	Taxonomies() []string
	All(taxonomy string) []field.Config
}

// TaxonomySchema describes the meta payload of one taxonomy as an object of
// string properties, since stored values are strings. Option lists are
// resolved now, so provider options reflect the time of the call.
func TaxonomySchema(fields []field.Config) *openapi3.Schema {
	schema := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	for _, cfg := range fields {
		schema.WithProperty(cfg.Key, propertySchema(cfg))
	}
	return schema
}

func propertySchema(cfg field.Config) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	prop.Title = cfg.Label
	prop.Description = cfg.Description
	if cfg.Default != "" {
		prop.Default = cfg.Default
	}
	prop.Extensions = map[string]any{ExtensionType: cfg.Type().String()}

	switch kind := cfg.Kind.(type) {
	case field.URL:
		prop.Format = "uri"
	case field.Email:
		prop.Format = "email"
	case field.Number:
		prop.Pattern = numberPattern
		setBound(prop, ExtensionMin, kind.Min)
		setBound(prop, ExtensionMax, kind.Max)
		setBound(prop, ExtensionStep, kind.Step)
	case field.Checkbox:
		prop.WithEnum("0", "1")
	case field.Select, field.AmountType:
		values := make([]any, 0)
		for _, opt := range field.ResolveOptions(kind) {
			values = append(values, opt.Value)
		}
		if len(values) > 0 {
			prop.WithEnum(values...)
		}
	}
	return prop
}

func setBound(prop *openapi3.Schema, key string, v *float64) {
	if v != nil {
		prop.Extensions[key] = strconv.FormatFloat(*v, 'f', -1, 64)
	}
}

// Document builds an OpenAPI document with one component schema per
// taxonomy and GET/PUT operations on its term meta.
func Document(source FieldSource, title, version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}

	for _, taxonomy := range source.Taxonomies() {
		name := ComponentName(taxonomy)
		value := TaxonomySchema(source.All(taxonomy))
		doc.Components.Schemas[name] = &openapi3.SchemaRef{Value: value}
		ref := &openapi3.SchemaRef{Ref: "#/components/schemas/" + name, Value: value}

		get := openapi3.NewOperation()
		get.OperationID = "get_" + taxonomy + "_meta"
		get.Summary = fmt.Sprintf("Read %s term meta", taxonomy)
		get.AddResponse(200, openapi3.NewResponse().WithDescription("Stored term meta").WithJSONSchemaRef(ref))
		get.AddResponse(404, openapi3.NewResponse().WithDescription("Unknown taxonomy"))

		put := openapi3.NewOperation()
		put.OperationID = "put_" + taxonomy + "_meta"
		put.Summary = fmt.Sprintf("Save %s term meta", taxonomy)
		put.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref)}
		put.AddResponse(200, openapi3.NewResponse().WithDescription("Save result"))
		put.AddResponse(400, openapi3.NewResponse().WithDescription("Payload does not match the schema"))

		doc.Paths.Set("/taxonomies/"+taxonomy+"/terms/{id}/meta", &openapi3.PathItem{
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewInt64Schema())},
			},
			Get: get,
			Put: put,
		})
	}
	return doc
}

// ComponentName is the component schema name used for a taxonomy.
func ComponentName(taxonomy string) string {
	return taxonomy + "_meta"
}

// Validate checks a decoded JSON payload against the taxonomy schema.
func Validate(ctx context.Context, fields []field.Config, payload map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := TaxonomySchema(fields).VisitJSON(payload); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
