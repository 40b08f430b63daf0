package http_test

import (
	"net/http"
	"regexp"
	"strings"
	"testing"

	api "restaurantops/internal/adapters/in/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

func TestOpenAPI_DescribesEveryRoute(t *testing.T) {
	doc, err := api.OpenAPI(t.Context())
	require.NoError(t, err)

	e := newEcho(t)
	for _, route := range e.Routes() {
		if !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		path := pathParam.ReplaceAllString(route.Path, "{$1}")
		item := doc.Paths.Value(path)
		require.NotNil(t, item, path)
		assert.NotNil(t, item.GetOperation(route.Method), "%s %s", route.Method, path)
	}
}

func TestValidateRequests(t *testing.T) {
	doc, err := api.OpenAPI(t.Context())
	require.NoError(t, err)
	validator, err := api.ValidateRequests(doc)
	require.NoError(t, err)

	e := newEcho(t)
	e.Use(validator)
	api.RegisterDocs(e)

	t.Run("valid request", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/delivery/assignments?priority=high", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown enum value", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/delivery/assignments?priority=asap", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[api.Error](t, rec).Error, "priority")
	})

	t.Run("wrong body type", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/reservations", `{"customerName":"Bo","partySize":"four"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("body reaches the handler after validation", func(t *testing.T) {
		rec := do(e, http.MethodPut, "/api/orders/1001/status", `{"status":"READY"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("document", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/swagger/doc.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "restaurantops workflow API")
	})
}
