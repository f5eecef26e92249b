package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL string
}

type RESTconfig struct {
	PORT   string
	Prefix string // префикс всех маршрутов API, например "api"
}

// PaginationConfig - значения по умолчанию для постраничной выборки.
type PaginationConfig struct {
	DefaultPage     int
	DefaultPageSize int
}

// UploadConfig - ограничения на загрузку изображений.
type UploadConfig struct {
	MaxFileSize       int64    // максимальный размер одного файла в байтах
	MaxFilesPerEntity int      // максимум файлов в одном запросе на создание
	UploadPath        string   // каталог для сохранения файлов
	AllowedFormats    []string // расширения без точки: jpeg, jpg, png
}

type StdoutLogConfig struct {
	Level string // По умолчанию DEBUG
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string // По умолчанию INFO
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

// AppConfig хранит всю конфигурацию приложения.
// Загружается один раз при старте и дальше только читается.
type AppConfig struct {
	AppName      string
	Database     DBconfig
	Rest         RESTconfig
	Pagination   PaginationConfig
	Upload       UploadConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// .env - удобство для локальной разработки, в контейнере его может не быть
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listings-service")

	// Читаем DATABASE URL
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Читаем конфигурацию для REST
	cfg.Rest.PORT = getEnvAsString("PORT", "3000")
	cfg.Rest.Prefix = strings.Trim(getEnvAsString("APP_PREFIX", "api"), "/")

	cfg.Pagination.DefaultPage = getEnvAsInt("DEFAULT_PAGE", 1)
	cfg.Pagination.DefaultPageSize = getEnvAsInt("DEFAULT_PAGE_SIZE", 10)

	// Дефолты пагинации обязаны быть валидным окном выборки: нулевой размер
	// страницы приводит к делению на ноль при подсчете страниц
	if cfg.Pagination.DefaultPage < 1 {
		log.Printf("WARNING: DEFAULT_PAGE %d is out of range, using 1.\n", cfg.Pagination.DefaultPage)
		cfg.Pagination.DefaultPage = 1
	}
	if cfg.Pagination.DefaultPageSize < 1 || cfg.Pagination.DefaultPageSize > 50 {
		log.Printf("WARNING: DEFAULT_PAGE_SIZE %d is out of range 1-50, using 10.\n", cfg.Pagination.DefaultPageSize)
		cfg.Pagination.DefaultPageSize = 10
	}

	cfg.Upload.MaxFileSize = int64(getEnvAsInt("MAX_FILE_SIZE", 5*1024*1024)) // 5MB
	cfg.Upload.MaxFilesPerEntity = getEnvAsInt("MAX_FILES_PER_ENTITY", 10)
	cfg.Upload.UploadPath = getEnvAsString("UPLOAD_PATH", "./uploads")
	cfg.Upload.AllowedFormats = getEnvAsSlice("ALLOWED_IMAGE_FORMATS", []string{"jpeg", "jpg", "png"})

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			log.Println("WARNING: RABBITMQ_ENABLED is true, but RABBITMQ_URL is not set. Disabling RabbitMQ.")
			cfg.RabbitMQ.Enabled = false
		}
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsSlice читает переменную как список значений, разделённых запятыми.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}

	parts := strings.Split(valStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, strings.ToLower(trimmed))
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
