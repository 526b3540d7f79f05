package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"listo/shared/constant"
	"listo/shared/failure"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerNotBlankValidation(field val.FieldLevel) bool {
	value := field.Field()
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return false
		}

		value = value.Elem()
	}

	if value.Kind() != reflect.String {
		return false
	}

	return strings.TrimSpace(value.String()) != ""
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.RegisterValidation("notblank", registerNotBlankValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

// Decode reads a JSON body into data without running struct validation.
func Decode[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(io.LimitReader(r, constant.RequestMaxBody))

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", decodeMessage(err))) //nolint:wrapcheck
	}

	return nil
}

// ReadText reads a raw text body.
func ReadText(r io.Reader) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, constant.RequestMaxBody))
	if err != nil {
		return "", failure.BadRequest(fmt.Errorf("failed to read request body: %w", err)) //nolint:wrapcheck
	}

	return string(body), nil
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
