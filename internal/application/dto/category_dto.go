package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=500"`
	ParentID    string `json:"parentId"`
}

// UpdateCategoryRequest actualización parcial. ParentID "" convierte la categoría en raíz.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ParentID    *string `json:"parentId"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    *string   `json:"parentId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryTreeNode nodo del árbol (GET /api/categories?tree=true).
type CategoryTreeNode struct {
	CategoryResponse
	Depth    int                `json:"depth"`
	Children []CategoryTreeNode `json:"children"`
}
