package dto

import "github.com/jhoicas/estoque-inteligente/internal/domain/entity"

// optional "" -> nil para que el JSON muestre null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    optional(c.ParentID),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCategoryList(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

func NewSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Document:  s.Document,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Description: p.Description,
		CategoryID:  optional(p.CategoryID),
		SupplierID:  optional(p.SupplierID),
		CostPrice:   p.CostPrice,
		SellPrice:   p.SellPrice,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		LowStock:    p.Quantity < p.MinQuantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductList(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}

func NewAlertResponse(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:        a.ID,
		Type:      a.Type,
		Message:   a.Message,
		ProductID: optional(a.ProductID),
		Read:      a.Read,
		CreatedAt: a.CreatedAt,
	}
}

// NewAlertPtr nil si no se emitió alerta.
func NewAlertPtr(a *entity.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	r := NewAlertResponse(a)
	return &r
}

func NewAlertList(list []*entity.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAlertResponse(a))
	}
	return out
}

func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Delta:     m.Delta,
		Before:    m.Before,
		After:     m.After,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

func NewSaleResponse(s *entity.Sale, items []*entity.SaleItem) SaleResponse {
	out := SaleResponse{
		ID:               s.ID,
		CustomerName:     s.CustomerName,
		CustomerDocument: s.CustomerDocument,
		TotalAmount:      s.TotalAmount,
		PaymentMethod:    s.PaymentMethod,
		Installments:     s.Installments,
		CardBrand:        s.CardBrand,
		Status:           s.Status,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if items != nil {
		out.Items = NewSaleItemList(items)
	}
	return out
}

func NewSaleItemResponse(it *entity.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		ID:        it.ID,
		SaleID:    it.SaleID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		Price:     it.Price,
		Discount:  it.Discount,
		Total:     it.LineTotal(),
		CreatedAt: it.CreatedAt,
	}
}

func NewSaleItemList(list []*entity.SaleItem) []SaleItemResponse {
	out := make([]SaleItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, NewSaleItemResponse(it))
	}
	return out
}

func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		LegalName:         c.LegalName,
		CNPJ:              c.CNPJ,
		StateRegistration: c.StateRegistration,
		Street:            c.Street,
		Number:            c.Number,
		Complement:        c.Complement,
		District:          c.District,
		City:              c.City,
		State:             c.State,
		ZipCode:           c.ZipCode,
		Phone:             c.Phone,
		Mobile:            c.Mobile,
		Email:             c.Email,
		LogoURL:           c.LogoURL,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
