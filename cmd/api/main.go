package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/infrastructure/database/postgres"
	"github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4"
	"github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4/ga4client"
	"github.com/cadastra/analytics-extractor-api/infrastructure/warehouse"
	"github.com/cadastra/analytics-extractor-api/internal/api"
	"github.com/cadastra/analytics-extractor-api/internal/catalog"
	"github.com/cadastra/analytics-extractor-api/internal/config"
	"github.com/cadastra/analytics-extractor-api/internal/scheduler"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	reportCatalog := catalog.Default()
	pgWarehouse := warehouse.NewPostgresWarehouse(pgConn)

	ga4Client := ga4client.NewClient(cfg)
	ga4Integrator := ga4.New(cfg, ga4Client)

	tableManager := extracting.NewTableManager(pgWarehouse)
	loader := extracting.NewLoader(pgWarehouse, extracting.LoaderConfig{
		WriteMaxAttempts: cfg.Extraction.WriteMaxAttempts,
	})

	orchestrator := extracting.NewOrchestrator(
		reportCatalog,
		ga4Integrator,
		tableManager,
		loader,
		extracting.OrchestratorConfig{
			MaxConcurrentTasks: cfg.Extraction.MaxConcurrentTasks,
			FetchMaxAttempts:   cfg.Extraction.FetchMaxAttempts,
			RunTimeout:         time.Duration(cfg.Extraction.RunTimeoutMinutes) * time.Minute,
			RowLimit:           int(cfg.GA4.RowLimit),
		},
	)

	// Inicializa o agendador da carga diária
	dailySyncService := scheduler.NewDailyExtractionSyncService(orchestrator, cfg)

	if err := dailySyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da carga diária de relatórios")
	} else {
		logrus.Info("Agendador da carga diária de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportCatalog,
		orchestrator,
		dailySyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
