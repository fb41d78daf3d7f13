package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	TotalProducts   int `json:"totalProducts"`
	TotalCategories int `json:"totalCategories"`
	TotalSuppliers  int `json:"totalSuppliers"`
	LowStockCount   int `json:"lowStockCount"`
	OutOfStockCount int `json:"outOfStockCount"`
	UnreadAlerts    int `json:"unreadAlerts"`

	InventoryUnits       int             `json:"inventoryUnits"`
	InventoryCostValue   decimal.Decimal `json:"inventoryCostValue"`
	InventoryRetailValue decimal.Decimal `json:"inventoryRetailValue"`

	TodaySalesCount   int             `json:"todaySalesCount"`
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
	MonthlySalesCount int             `json:"monthlySalesCount"`
	MonthlyRevenue    decimal.Decimal `json:"monthlyRevenue"`

	TopProducts   []TopProductDTO   `json:"topProducts"`
	LowStockItems []ProductResponse `json:"lowStockItems"`
	RecentAlerts  []AlertResponse   `json:"recentAlerts"`
}

// TopProductDTO producto más vendido del mes.
type TopProductDTO struct {
	ProductID    string          `json:"productId"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
