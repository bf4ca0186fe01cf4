package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindBody decodes a JSON body into dst after checking it against the named
// schema of the API document, then applies the struct's validate tags.
func (s *Server) bindBody(c echo.Context, schema string, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest("unreadable request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errs.NewValueIsRequiredError("body")
	}

	var raw any
	if err = json.Unmarshal(body, &raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err = s.api.validate(schema, raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err = json.Unmarshal(body, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = append(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = append(joined, errs.NewValueIsInvalidError(fe.Field()))
	}
	return errors.Join(joined...)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	var raw string
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &raw,
	); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.UUIDFromString(raw)
}

// queryString binds an optional query parameter; absent yields "".
func queryString(c echo.Context, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &v); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// queryInt binds an optional integer query parameter; absent yields 0.
func queryInt(c echo.Context, name string) (int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &v); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if v == nil {
		return 0, nil
	}
	return *v, nil
}
