package repository

// Repositories agrupa los puertos atados a una misma conexión o transacción.
type Repositories struct {
	Categories CategoryRepository
	Suppliers  SupplierRepository
	Products   ProductRepository
	Alerts     AlertRepository
	Sales      SaleRepository
	Movements  StockMovementRepository
	Company    CompanyRepository
}
