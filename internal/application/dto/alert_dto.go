package dto

import "time"

// CreateAlertRequest alta manual (tipo system por defecto).
type CreateAlertRequest struct {
	Type      string `json:"type" validate:"omitempty,oneof=low_stock out_of_stock system"`
	Message   string `json:"message" validate:"required,min=1,max=500"`
	ProductID string `json:"productId"`
}

// AlertResponse salida de una alerta/notificación.
type AlertResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	ProductID *string   `json:"productId"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
