package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	"github.com/lucaspascoa/novoteste/internal/auth"
	"github.com/lucaspascoa/novoteste/internal/base44"
	"github.com/lucaspascoa/novoteste/internal/config"
	"github.com/lucaspascoa/novoteste/internal/domain"
	httpapi "github.com/lucaspascoa/novoteste/internal/http"
	"github.com/lucaspascoa/novoteste/internal/obs"
	"github.com/lucaspascoa/novoteste/internal/repository"
	"github.com/lucaspascoa/novoteste/internal/service"
	"github.com/lucaspascoa/novoteste/internal/stock"

	_ "github.com/lucaspascoa/novoteste/docs"
)

type repos struct {
	products   repository.ProductRepository
	orders     repository.OrderRepository
	audit      repository.AuditLogRepository
	staff      repository.StaffRepository
	roles      repository.RoleRepository
	categories repository.CategoryRepository
	config     repository.StoreConfigRepository
	zones      repository.DeliveryZoneRepository
	closures   repository.ClosureRepository
}

func buildRepos(cfg config.Config) repos {
	if cfg.BackendBaseURL == "" {
		obs.Logger.Info("usando armazenamento em memória")
		store := repository.NewMemoryStore()
		return repos{
			products:   store,
			orders:     repository.NewMemoryOrders(store),
			audit:      repository.NewMemoryAudit(store),
			staff:      repository.NewMemoryStaff(store),
			roles:      repository.NewMemoryRoles(store),
			categories: repository.NewMemoryCategories(store),
			config:     repository.NewMemoryConfig(store),
			zones:      repository.NewMemoryZones(store),
			closures:   repository.NewMemoryClosures(store),
		}
	}
	obs.Logger.Info("usando backend de entidades", "base_url", cfg.BackendBaseURL)
	client := base44.New(cfg.BackendBaseURL, cfg.BackendAppID, cfg.BackendAPIKey)
	return repos{
		products:   base44.NewProducts(client),
		orders:     base44.NewOrders(client),
		audit:      base44.NewAuditLogs(client),
		staff:      base44.NewStaff(client),
		roles:      base44.NewRoles(client),
		categories: base44.NewCategories(client),
		config:     base44.NewConfig(client),
		zones:      base44.NewZones(client),
		closures:   base44.NewClosures(client),
	}
}

// seedAdmin garante o perfil Admin e, com ADMIN_PASSWORD definido, cria a
// primeira conta da equipe caso ela ainda não exista.
func seedAdmin(ctx context.Context, cfg config.Config, authorizer *auth.Authorizer, staff repository.StaffRepository) error {
	if err := authorizer.EnsureAdminRole(ctx); err != nil {
		return err
	}
	if cfg.AdminPassword == "" {
		return nil
	}
	if _, err := staff.GetByUsername(ctx, cfg.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	obs.Logger.Info("criando conta admin inicial", "username", cfg.AdminUsername)
	return staff.Create(ctx, &domain.Staff{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		FullName:     "Administrador",
		Role:         auth.AdminRoleName,
		Status:       "active",
	})
}

func main() {
	obs.InitLogger()
	cfg := config.Load()
	ctx := context.Background()

	if cfg.TracingEnable {
		tp, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			obs.Logger.Error("falha ao iniciar tracer", "err", err)
			os.Exit(1)
		}
		defer tp.Shutdown(ctx)
		mp, err := obs.InitMetrics(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			obs.Logger.Error("falha ao iniciar métricas", "err", err)
			os.Exit(1)
		}
		defer mp.Shutdown(ctx)
	}

	r := buildRepos(cfg)

	authorizer := auth.NewAuthorizer(r.roles)
	if err := seedAdmin(ctx, cfg, authorizer, r.staff); err != nil {
		obs.Logger.Error("falha no bootstrap do admin", "err", err)
		os.Exit(1)
	}
	authSvc := auth.NewService(r.staff, authorizer)

	stockMgr := stock.NewManager(r.products, r.audit, otel.Tracer(cfg.ServiceName))

	srv := httpapi.NewServer(cfg.ServiceName, httpapi.Deps{
		Products: service.NewProductService(r.products, r.audit),
		Orders:   service.NewOrderService(r.orders, r.products, r.zones, r.config, stockMgr),
		Admin:    service.NewAdminService(r.staff, r.roles, r.categories, r.zones, r.config),
		Closures: service.NewClosureService(r.orders, r.closures),
		Reports:  service.NewReportService(r.orders),
		Stock:    stockMgr,
		Auth:     authSvc,
		Audit:    r.audit,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		obs.Logger.Info("servidor HTTP ouvindo", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("erro no servidor", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		obs.Logger.Error("erro no shutdown", "err", err)
	}
}
