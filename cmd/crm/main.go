package main

import (
	"context"
	"log/slog"
	"os"

	"crm/config"
	"crm/internal/delivery"
	"crm/internal/delivery/api"
	"crm/internal/delivery/api/middleware"
	"crm/internal/delivery/api/router/handler"
	"crm/internal/delivery/scheduler"
	"crm/internal/infra/audit"
	"crm/internal/infra/auth"
	logs "crm/internal/infra/log"
	"crm/internal/infra/persistence/migration"
	"crm/internal/infra/persistence/postgres"
	"crm/internal/infra/pubsub"
	"crm/internal/infra/telemetry"
	"crm/internal/usecase/impl"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			migration.RegisterAutoMigrate,
			impl.RegisterAdminBootstrap,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		telemetry.New,
		newValidate,
	)
}

// newValidate is shared by request DTO validation and the record field rules.
func newValidate() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCredentialRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewSecurityEventRepository,
			postgres.NewVersionedRecordRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			pubsub.NewSecurityEventPublisher,
			audit.NewSecurityEventRecorder,
			audit.NewArchiverFromConfig,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLockoutService,
			impl.NewSessionService,
			impl.NewAuthService,
			impl.NewSecurityEventService,
			impl.NewRecordService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewRateLimiter,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewSecurityEventHandler,
			handler.NewRecordHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer launches every delivery once the earlier start hooks
// (database ping, migrations, admin bootstrap, recorder workers) have succeeded.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(ctx); err != nil {
						params.Logger.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
