package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "hrms-backend/internal/auth"
	"hrms-backend/internal/candidates"
	"hrms-backend/internal/employees"
	"hrms-backend/internal/leave"
	"hrms-backend/internal/mail"
	"hrms-backend/internal/notify"
	"hrms-backend/internal/postings"
	"hrms-backend/internal/queue"
	"hrms-backend/internal/reports"
	"hrms-backend/internal/requirements"
	"hrms-backend/internal/shared/config"
	"hrms-backend/internal/shared/server"
	"hrms-backend/internal/shared/storage/db"
	"hrms-backend/internal/shared/storage/object"
	localstore "hrms-backend/internal/shared/storage/object/local"
	s3store "hrms-backend/internal/shared/storage/object/s3"
	"hrms-backend/internal/shared/telemetry"
	"hrms-backend/internal/store"
	"hrms-backend/internal/users"
)

// App holds the wired application: the document store, its persister
// backend, the notification pipeline, and every feature service.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   *store.Store
	Objects object.ObjectStore
	Mail    mail.Transport
	Queue   queue.Client

	UsersService        *users.Service
	RequirementsService *requirements.Service
	PostingsService     *postings.Service
	CandidatesService   *candidates.Service
	NotifyService       *notify.Service
	ReportsService      *reports.Service
	EmployeesService    *employees.Service
	LeaveService        *leave.Service
	GoogleAuth          *googleauth.GoogleService

	// channel is set when the queue is the in-process backend; the API
	// process then runs the consumer loop itself.
	channel *queue.ChannelClient
}

// Build wires all dependencies and the router from config.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := buildStore(ctx, app); err != nil {
		return nil, err
	}
	if err := buildObjects(ctx, app); err != nil {
		return nil, err
	}
	if err := buildMail(ctx, app); err != nil {
		return nil, err
	}
	if err := buildQueue(ctx, app); err != nil {
		return nil, err
	}

	app.UsersService = users.NewService(app.Store)
	app.RequirementsService = requirements.NewService(app.Store)
	app.PostingsService = postings.NewService(app.Store)
	app.CandidatesService = candidates.NewService(app.Store, app.Queue, app.Objects)
	app.NotifyService = notify.NewService(app.Store, app.Mail, app.Queue, cfg.MailFrom, cfg.CompanyName)
	app.ReportsService = reports.NewService(app.Store)
	app.EmployeesService = employees.NewService(app.Store)
	app.LeaveService = leave.NewService(app.Store)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		app.UsersService,
	)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		RequirementsHandler: requirements.NewHandler(app.RequirementsService),
		PostingsHandler:     postings.NewHandler(app.PostingsService),
		CandidatesHandler:   candidates.NewHandler(app.CandidatesService),
		NotifyHandler:       notify.NewHandler(app.NotifyService),
		ReportsHandler:      reports.NewHandler(app.ReportsService),
		EmployeesHandler:    employees.NewHandler(app.EmployeesService),
		LeaveHandler:        leave.NewHandler(app.LeaveService),
		UsersHandler:        users.NewHandler(app.UsersService),
		GoogleAuth:          app.GoogleAuth,
	})

	return app, nil
}

// StartWorker launches the in-process notification consumer when the
// channel queue backend is active. With SQS configured the consumer runs
// in cmd/worker instead and this is a no-op.
func (a *App) StartWorker(ctx context.Context) {
	if a.channel == nil {
		return
	}
	go a.channel.Run(ctx, a.NotifyService.HandleMessage)
	telemetry.Info("bootstrap.worker.started", map[string]any{"backend": "channel"})
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildStore(ctx context.Context, app *App) error {
	cfg := app.Config
	if cfg.StoreBackend == "postgres" {
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return fmt.Errorf("run migrations: %w", err)
		}
		st, err := store.Open(ctx, &store.PGPersister{DB: sqlDB})
		if err != nil {
			sqlDB.Close()
			return err
		}
		app.DB = sqlDB
		app.Store = st
		return nil
	}

	st, err := store.Open(ctx, store.NewFilePersister(cfg.StorePath))
	if err != nil {
		return err
	}
	app.Store = st
	return nil
}

func buildObjects(ctx context.Context, app *App) error {
	cfg := app.Config
	if cfg.ObjectStoreType == "s3" {
		objects, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return fmt.Errorf("build s3 object store: %w", err)
		}
		app.Objects = objects
		return nil
	}
	app.Objects = localstore.New(cfg.LocalStoreDir)
	return nil
}

func buildMail(ctx context.Context, app *App) error {
	if app.Config.MailProvider == "ses" {
		transport, err := mail.NewSESTransport(ctx, app.Config.AWSRegion)
		if err != nil {
			return fmt.Errorf("build ses transport: %w", err)
		}
		app.Mail = transport
		return nil
	}
	if app.Config.Env == "production" {
		log.Printf("bootstrap: MAIL_PROVIDER=memory in production; emails are not delivered")
	}
	app.Mail = mail.NewMemoryTransport()
	return nil
}

func buildQueue(ctx context.Context, app *App) error {
	if strings.TrimSpace(app.Config.QueueURL) != "" {
		client, err := queue.NewSQSClient(ctx)
		if err != nil {
			return fmt.Errorf("build sqs queue: %w", err)
		}
		app.Queue = client
		return nil
	}
	ch := queue.NewChannelClient(0)
	app.channel = ch
	app.Queue = ch
	return nil
}
