package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	GA4        GA4        `mapstructure:",squash"`
	Extraction Extraction `mapstructure:",squash"`
	DailySync  DailySync  `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type GA4 struct {
	BaseURL           string   `mapstructure:"ga4_base_url"`
	URL               string   `mapstructure:"-"`
	Version           string   `mapstructure:"ga4_version"`
	AccessToken       string   `mapstructure:"ga4_access_token"`
	PropertyIDs       []string `mapstructure:"ga4_property_ids"`
	RequestsPerSecond float64  `mapstructure:"ga4_requests_per_second"`
	RowLimit          int64    `mapstructure:"ga4_row_limit"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Extraction struct {
	MaxConcurrentTasks int `mapstructure:"extraction_max_concurrent_tasks"`
	FetchMaxAttempts   int `mapstructure:"extraction_fetch_max_attempts"`
	WriteMaxAttempts   int `mapstructure:"extraction_write_max_attempts"`
	RunTimeoutMinutes  int `mapstructure:"extraction_run_timeout_minutes"`
}

type DailySync struct {
	CronSchedule string `mapstructure:"daily_sync_cron"`
	LookbackDays int    `mapstructure:"daily_sync_lookback_days"`
	Enabled      bool   `mapstructure:"daily_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/analytics")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("GA4_BASE_URL", "https://analyticsdata.googleapis.com")
	viper.SetDefault("GA4_VERSION", "v1beta")
	viper.SetDefault("GA4_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("GA4_PROPERTY_IDS", "")
	viper.SetDefault("GA4_REQUESTS_PER_SECOND", 5.0)
	viper.SetDefault("GA4_ROW_LIMIT", 100000)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults para a orquestração de extrações
	viper.SetDefault("EXTRACTION_MAX_CONCURRENT_TASKS", 3) // 3 tarefas concorrentes
	viper.SetDefault("EXTRACTION_FETCH_MAX_ATTEMPTS", 3)   // 3 tentativas de busca no upstream
	viper.SetDefault("EXTRACTION_WRITE_MAX_ATTEMPTS", 3)   // 3 tentativas de escrita no warehouse
	viper.SetDefault("EXTRACTION_RUN_TIMEOUT_MINUTES", 0)  // 0 = sem timeout

	// Defaults para a carga diária (D-1)
	viper.SetDefault("DAILY_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("DAILY_SYNC_LOOKBACK_DAYS", 1)  // 1 dia para buscar dados
	viper.SetDefault("DAILY_SYNC_ENABLED", false)    // Habilitar carga diária

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.GA4.URL = fmt.Sprintf("%s/%s", config.GA4.BaseURL, config.GA4.Version)
	config.GA4.PropertyIDs = trimEmpty(config.GA4.PropertyIDs)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// trimEmpty remove entradas vazias da lista de propriedades (a variável de
// ambiente pode vir com vírgulas sobrando)
func trimEmpty(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			cleaned = append(cleaned, value)
		}
	}
	return cleaned
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
