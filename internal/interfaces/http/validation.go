package http

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// los errores usan el nombre JSON del campo
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct devuelve un *domain.ValidationError con un mensaje por campo.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), fieldMessage(fe))
	}
	return out
}

// fieldPath quita los nombres de struct (raíz y embebidos), que son los únicos en mayúscula:
// "CreateSaleRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" && unicode.IsUpper([]rune(p)[0]) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return ns
	}
	return strings.Join(out, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "len":
		return "debe tener largo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "email":
		return "email inválido"
	case "url":
		return "URL inválida"
	case "alpha":
		return "solo letras"
	}
	return "inválido (" + fe.Tag() + ")"
}

// parseBody decodifica el JSON y aplica las reglas de validación del DTO.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validateStruct(out)
}

var errInvalidBody = errors.New("cuerpo inválido")

// bind atiende los dos errores posibles de parseBody.
func bind(c *fiber.Ctx, out any) (bool, error) {
	err := parseBody(c, out)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errInvalidBody) {
		return false, badBody(c)
	}
	return false, writeError(c, err)
}
