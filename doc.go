// Package termmeta declares custom metadata fields on taxonomy terms.
//
// A Manager holds the field configurations, the term meta store, the
// capability check and the renderers. RegisterFields returns one Taxonomy
// handle per registered taxonomy; the handle renders the add and edit
// screens, saves submissions and attaches itself to host hooks:
//
//	m := termmeta.New(termmeta.WithMetaStore(store))
//	handles := m.RegisterFields([]string{"product_cat"}, field.Fields{
//		field.Define("color", field.Raw{Label: "Color", Default: "#000000"}),
//	})
//	html, err := handles["product_cat"].RenderAdd(ctx)
//
// Stored values are read back with GetFieldValue, which falls back to the
// registered default when a taxonomy is given.
package termmeta
