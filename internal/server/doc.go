// Package server is a small term admin host built on chi.
//
// It renders the add and edit term screens by firing the form hooks each
// taxonomy attaches to, saves submitted forms through the created and edited
// hooks, and serves term meta as JSON validated against the generated
// OpenAPI schema:
//
//	GET  /openapi.json
//	GET  /taxonomies
//	GET  /options/{name}?q=&limit=
//	GET  /taxonomies/{taxonomy}/fields
//	GET  /taxonomies/{taxonomy}/terms/new
//	POST /taxonomies/{taxonomy}/terms
//	GET  /taxonomies/{taxonomy}/terms/{id}/edit
//	POST /taxonomies/{taxonomy}/terms/{id}
//	GET  /taxonomies/{taxonomy}/terms/{id}/meta
//	PUT  /taxonomies/{taxonomy}/terms/{id}/meta
//
// The actor is read from identity headers set by a trusted front proxy.
package server
