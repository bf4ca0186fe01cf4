package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// OpenAPIPath serves the raw API document.
const OpenAPIPath = "/openapi.json"

//go:embed openapi.json
var openAPIDocument []byte

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(openAPIDocument)
}

func init() { //nolint:gochecknoinits // swag looks documents up by name
	swag.Register(swag.Name, swaggerDoc{})
}

// apiDocument validates request bodies against the component schemas of the
// embedded document.
type apiDocument struct {
	doc *openapi3.T
}

func loadAPIDocument() (*apiDocument, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load api document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid api document: %w", err)
	}
	return &apiDocument{doc: doc}, nil
}

func (a *apiDocument) validate(schema string, value any) error {
	ref, ok := a.doc.Components.Schemas[schema]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", schema)
	}
	return ref.Value.VisitJSON(value)
}

// ServeOpenAPI writes the embedded API document.
func ServeOpenAPI(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
}

// SwaggerUI serves the Swagger UI pointed at OpenAPIPath.
func SwaggerUI() echo.HandlerFunc {
	return echoSwagger.EchoWrapHandler(echoSwagger.URL(OpenAPIPath))
}
