// Package docs registra la especificación OpenAPI generada a partir de las anotaciones
// de internal/interfaces/http (swag init -g cmd/api/main.go -o docs).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

// SwaggerInfo metadatos expuestos; la plantilla es el swagger.json embebido.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Estoque Inteligente API",
	Description:      "Inventario, ventas y alertas de stock para pequeños comercios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
