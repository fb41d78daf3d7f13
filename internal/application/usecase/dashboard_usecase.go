package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

const (
	dashboardTopProducts  = 5
	dashboardLowStockRows = 10
	dashboardRecentAlerts = 5
)

// DashboardUseCase agrega los KPIs de la pantalla principal.
type DashboardUseCase struct {
	dash  repository.DashboardRepository
	repos repository.Repositories
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dash repository.DashboardRepository, repos repository.Repositories) *DashboardUseCase {
	return &DashboardUseCase{dash: dash, repos: repos, now: time.Now}
}

// Summary lanza las consultas en paralelo; la primera que falle cancela el resto.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardDTO, error) {
	now := uc.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		counts   repository.CatalogCounts
		value    repository.InventoryValue
		today    repository.SalesTotals
		month    repository.SalesTotals
		top      []repository.TopProduct
		lowStock []*entity.Product
		alerts   []*entity.Alert
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { counts, err = uc.dash.CatalogCounts(gctx); return })
	g.Go(func() (err error) { value, err = uc.dash.InventoryValue(gctx); return })
	g.Go(func() (err error) { today, err = uc.dash.SalesTotals(gctx, dayStart, now); return })
	g.Go(func() (err error) { month, err = uc.dash.SalesTotals(gctx, monthStart, now); return })
	g.Go(func() (err error) {
		top, err = uc.dash.TopProducts(gctx, monthStart, now, dashboardTopProducts)
		return
	})
	g.Go(func() (err error) { lowStock, err = uc.repos.Products.ListLowStock(gctx); return })
	g.Go(func() (err error) { alerts, err = uc.repos.Alerts.List(gctx, true, dashboardRecentAlerts); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(lowStock) > dashboardLowStockRows {
		lowStock = lowStock[:dashboardLowStockRows]
	}
	topDTO := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		topDTO = append(topDTO, dto.TopProductDTO{
			ProductID:    t.ProductID,
			SKU:          t.SKU,
			ProductName:  t.Name,
			QuantitySold: t.QuantitySold,
			Revenue:      t.Revenue,
		})
	}

	return &dto.DashboardDTO{
		TotalProducts:        counts.Products,
		TotalCategories:      counts.Categories,
		TotalSuppliers:       counts.Suppliers,
		LowStockCount:        counts.LowStock,
		OutOfStockCount:      counts.OutOfStock,
		UnreadAlerts:         counts.UnreadAlerts,
		InventoryUnits:       value.Units,
		InventoryCostValue:   value.Cost,
		InventoryRetailValue: value.Retail,
		TodaySalesCount:      today.Count,
		TodayRevenue:         today.Revenue,
		MonthlySalesCount:    month.Count,
		MonthlyRevenue:       month.Revenue,
		TopProducts:          topDTO,
		LowStockItems:        dto.NewProductList(lowStock),
		RecentAlerts:         dto.NewAlertList(alerts),
	}, nil
}
