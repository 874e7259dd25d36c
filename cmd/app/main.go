package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"production/cmd"
	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres/costconfigrepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/productrepo"
	"production/internal/adapters/out/postgres/workerrepo"
	"production/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := connectDB(configs)
	migrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		OrderFeedBaseURL: goDotEnvVariable("ORDER_FEED_BASE_URL"),
		OrderFeedToken:   goDotEnvVariable("ORDER_FEED_TOKEN"),
		SyncSchedule:     goDotEnvVariable("SYNC_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.ActionDTO{},
		&productrepo.ProductDTO{},
		&workerrepo.WorkerDTO{},
		&costconfigrepo.CostConfigDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	schedule := configs.SyncSchedule
	if schedule == "" {
		schedule = "0 */5 * * * *" // every five minutes
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreateSyncOrdersCommandHandler(), schedule, logger)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateSubmitActionCommandHandler(),
		app.CreateAmendActionCommandHandler(),
		app.CreateDeleteActionCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateAddLineCommandHandler(),
		app.CreateChangeLineQuantityCommandHandler(),
		app.CreateRemoveLineCommandHandler(),
		app.CreateUpdateCostConfigCommandHandler(),
		app.CreateSyncOrdersCommandHandler(),
		app.CreateGetLineWithActionsQueryHandler(),
		app.CreateGetOrdersBoardQueryHandler(),
		app.CreateGetWorkerActionsQueryHandler(),
		app.CreateGetWorkerByCodeQueryHandler(),
		app.CreateListWorkersQueryHandler(),
		app.CreateGetCostConfigQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
