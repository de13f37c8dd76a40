package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	termmeta "github.com/goliatone/go-termmeta"
	"github.com/goliatone/go-termmeta/pkg/choices"
	"github.com/goliatone/go-termmeta/pkg/field"
)

func newTestServer(t *testing.T) (*Server, *termmeta.Manager) {
	t.Helper()
	m := termmeta.New()
	m.RegisterFields([]string{"product_cat"}, field.Fields{
		field.Define("color", field.Raw{Label: "Color", Default: "#000000"}),
		field.Define("featured", field.Raw{Label: "Featured", Type: "checkbox"}),
		field.Define("weight", field.Raw{Label: "Weight", Type: "number", Max: field.Float(10)}),
		field.Define("secret", field.Raw{Label: "Secret", Capability: "manage_options"}),
	})
	srv, err := New(m, WithTermIDs(func() int64 { return 77 }), WithVersion("1.2.3"))
	require.NoError(t, err)
	return srv, m
}

func do(t *testing.T, srv *Server, method, target, body, contentType string, roles ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if len(roles) > 0 {
		req.Header.Set(DefaultActorHeader, "1")
		req.Header.Set(DefaultRolesHeader, strings.Join(roles, ", "))
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestAddScreenRendersFieldsForEditors(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/taxonomies/product_cat/terms/new", "", "", "editor")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `<form method="post" action="/taxonomies/product_cat/terms" id="addtag">`)
	assert.Contains(t, body, `<input type="hidden" name="taxonomy" value="product_cat">`)
	assert.Contains(t, body, `value="#000000"`)
	assert.NotContains(t, body, "term-meta-secret")
	assert.NotContains(t, body, "<table")
}

func TestAddScreenHidesFieldsFromAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/taxonomies/product_cat/terms/new", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "term-meta-color")
}

func TestCreateThenEditScreen(t *testing.T) {
	srv, m := newTestServer(t)
	form := url.Values{"taxonomy": {"product_cat"}, "color": {"<b>teal</b>"}, "featured": {"1"}, "weight": {"40"}}

	rec := do(t, srv, http.MethodPost, "/taxonomies/product_cat/terms", form.Encode(), "application/x-www-form-urlencoded", "administrator")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/taxonomies/product_cat/terms/77/edit", rec.Header().Get("Location"))

	value, err := m.GetFieldValue(t.Context(), 77, "color", "product_cat")
	require.NoError(t, err)
	assert.Equal(t, "teal", value)

	rec = do(t, srv, http.MethodGet, "/taxonomies/product_cat/terms/77/edit", "", "", "administrator")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<input type="hidden" name="tag_ID" value="77">`)
	assert.Contains(t, body, `<table class="form-table" role="presentation">`)
	assert.Contains(t, body, `value="teal"`)
	assert.Contains(t, body, `value="10"`)
	assert.Contains(t, body, `value="1" checked`)
}

func TestUpdateUncheckedCheckbox(t *testing.T) {
	srv, m := newTestServer(t)
	require.NoError(t, m.Meta().Set(t.Context(), 5, "featured", "1"))

	form := url.Values{"color": {"red"}}
	rec := do(t, srv, http.MethodPost, "/taxonomies/product_cat/terms/5", form.Encode(), "application/x-www-form-urlencoded", "editor")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	value, _, err := m.Meta().Get(t.Context(), 5, "featured")
	require.NoError(t, err)
	assert.Equal(t, "0", value)
}

func TestMetaJSONRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPut, "/taxonomies/product_cat/terms/9/meta", `{"color":"navy","weight":"3"}`, "application/json", "editor")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Updated []string `json:"updated"`
		Skipped []string `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, []string{"color", "featured", "weight"}, result.Updated)
	assert.Equal(t, []string{"secret"}, result.Skipped)

	rec = do(t, srv, http.MethodGet, "/taxonomies/product_cat/terms/9/meta", "", "", "editor")
	require.Equal(t, http.StatusOK, rec.Code)
	var values map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &values))
	assert.Equal(t, map[string]string{"color": "navy", "featured": "0", "weight": "3"}, values)
}

func TestPutMetaRejectsInvalidPayload(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{`{"weight":"heavy"}`, `{"unknown":"x"}`, `not json`} {
		rec := do(t, srv, http.MethodPut, "/taxonomies/product_cat/terms/9/meta", body, "application/json", "editor")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestUnknownTaxonomyAndBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/taxonomies/nope/terms/new", "", "", "editor")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/taxonomies/product_cat/terms/abc/meta", "", "", "editor")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFieldsAndOpenAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/taxonomies/product_cat/fields", "", "", "administrator")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Fields []fieldResponse `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Len(t, listing.Fields, 4)

	rec = do(t, srv, http.MethodGet, "/openapi.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "1.2.3", doc["info"].(map[string]any)["version"])

	rec = do(t, srv, http.MethodGet, "/taxonomies", "", "")
	assert.JSONEq(t, `{"taxonomies":["product_cat"]}`, rec.Body.String())
}

func TestOptionsSearch(t *testing.T) {
	_, m := newTestServer(t)
	srv, err := New(m, WithChoices(choices.NewRegistry()))
	require.NoError(t, err)

	rec := do(t, srv, http.MethodGet, "/options/timezones?q=europe/par", "", "", "editor")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var payload struct {
		Data []field.Option `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Data)
	assert.Equal(t, "Europe/Paris", payload.Data[0].Value)

	rec = do(t, srv, http.MethodGet, "/options/timezones", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/options/timezones", "", "", "subscriber")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, srv, http.MethodGet, "/options/planets", "", "", "editor")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNonceGuardsFormSubmissions(t *testing.T) {
	_, m := newTestServer(t)
	srv, err := New(m,
		WithTermIDs(func() int64 { return 31 }),
		WithNonce(func(r *http.Request) string { return "tok-" + r.Header.Get(DefaultActorHeader) }),
	)
	require.NoError(t, err)

	rec := do(t, srv, http.MethodGet, "/taxonomies/product_cat/terms/new", "", "", "editor")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<input type="hidden" name="_termmeta_nonce" value="tok-1">`)

	form := url.Values{"color": {"red"}}
	rec = do(t, srv, http.MethodPost, "/taxonomies/product_cat/terms", form.Encode(), "application/x-www-form-urlencoded", "editor")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	_, ok, err := m.Meta().Get(t.Context(), 31, "color")
	require.NoError(t, err)
	assert.False(t, ok)

	form.Set("_termmeta_nonce", "tok-1")
	rec = do(t, srv, http.MethodPost, "/taxonomies/product_cat/terms/31", form.Encode(), "application/x-www-form-urlencoded", "editor")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	value, _, err := m.Meta().Get(t.Context(), 31, "color")
	require.NoError(t, err)
	assert.Equal(t, "red", value)
}
