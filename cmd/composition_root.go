package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"restaurantops/internal/adapters/in/http"
	"restaurantops/internal/adapters/out/backend"
	"restaurantops/internal/adapters/out/mockdata"
	"restaurantops/internal/adapters/out/postgres"
	"restaurantops/internal/adapters/out/postgres/auditrepo"
	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/application/workflow"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompositionRoot owns the wired application: the audit database, the live
// backend clients, the mock dataset and the facade over both.
type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	gormDB   *gorm.DB
	auditLog *auditrepo.GormTransitionLog
	gateway  *datasource.Gateway
	mock     *mockdata.Mock
	facade   *workflow.Facade
}

// NewCompositionRoot opens and migrates the audit log and wires the facade.
// The gateway starts disconnected; call Probe to go live.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	decimal.MarshalJSONWithoutQuotes = true

	gormDB, err := postgres.Open(config.DBDriver, config.DBDsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	auditLog := auditrepo.NewGormTransitionLog(gormDB)
	if err := auditLog.Migrate(ctx); err != nil {
		_ = postgres.Close(gormDB)
		return nil, fmt.Errorf("migrate audit database: %w", err)
	}

	taxRate := kernel.DefaultTaxRate
	if config.TaxRate > 0 {
		taxRate = decimal.NewFromFloat(config.TaxRate)
	}

	mock, err := mockdata.NewMock(mockdata.Fixed(kernel.SystemClock(), taxRate), mockdata.Config{
		TaxRate:  taxRate,
		Observer: auditLog,
		Logger:   logger,
	})
	if err != nil {
		_ = postgres.Close(gormDB)
		return nil, fmt.Errorf("seed mock dataset: %w", err)
	}

	client := backend.NewClient(config.BackendURL, config.APIPrefix, config.Timeout, logger)
	gateway := datasource.NewGateway(client, logger)

	facade := workflow.NewFacade(gateway, workflow.Sources{
		Orders:       datasource.Binding[ports.OrderSource]{Live: backend.NewOrderClient(client), Mock: mock},
		Deliveries:   datasource.Binding[ports.DeliverySource]{Live: backend.NewDeliveryClient(client), Mock: mock},
		Reservations: datasource.Binding[ports.ReservationSource]{Live: backend.NewReservationClient(client), Mock: mock},
	}, workflow.Config{
		Log:     auditLog,
		TaxRate: taxRate,
		Logger:  logger,
	})

	return &CompositionRoot{
		config:   config,
		logger:   logger,
		gormDB:   gormDB,
		auditLog: auditLog,
		gateway:  gateway,
		mock:     mock,
		facade:   facade,
	}, nil
}

// Probe checks the backend once and reports whether the facade runs live.
func (c *CompositionRoot) Probe(ctx context.Context) bool {
	return c.gateway.Probe(ctx)
}

func (c *CompositionRoot) Facade() *workflow.Facade {
	return c.facade
}

func (c *CompositionRoot) AuditLog() *auditrepo.GormTransitionLog {
	return c.auditLog
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(c.facade)
}

// CreateEcho builds the echo instance serving the workflow API with request
// validation against the API document and the document browser.
func (c *CompositionRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	doc, err := http.OpenAPI(ctx)
	if err != nil {
		return nil, fmt.Errorf("load API document: %w", err)
	}
	validator, err := http.ValidateRequests(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(validator)
	c.CreateServer().Register(e)
	http.RegisterDocs(e)
	return e, nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.facade, c.auditLog, jobs.Schedule{
		Metrics:      c.config.MetricsCron,
		Reservations: c.config.PendingCron,
	}, c.logger)
}

// Close releases the audit database.
func (c *CompositionRoot) Close() error {
	return postgres.Close(c.gormDB)
}
