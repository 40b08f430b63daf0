package http

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPIDocument []byte

type swaggerDoc []byte

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

func init() {
	swag.Register(swag.Name, swaggerDoc(openAPIDocument))
}

// OpenAPI loads and validates the document describing the API.
func OpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// RegisterDocs serves the API document and its browser under /swagger.
func RegisterDocs(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// ValidateRequests rejects requests that do not match doc with a 400 before
// they reach a handler. Paths doc does not describe pass through.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			route, pathParams, err := router.FindRoute(ctx.Request())
			if err != nil {
				return next(ctx)
			}
			if err := validate(ctx.Request(), route, pathParams); err != nil {
				return ctx.JSON(http.StatusBadRequest, Error{Error: err.Error()})
			}
			return next(ctx)
		}
	}, nil
}

func validate(req *http.Request, route *routers.Route, pathParams map[string]string) error {
	return openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	})
}
