package constants

const (
	AppName       = "bankcore"
	EnvPrefix     = "BANKCORE"
	ConfigName    = "config"
	ConfigType    = "yaml"
	DBFileName    = "bankcore.db"
	LogFileName   = "transactions.log"
	CentsPerUnit  = 100
	DefaultLimit  = 20
	MetricsPrefix = "bankcore"
)

// Transaction log drivers
const (
	LogDriverSQLite = "sqlite"
	LogDriverFile   = "file"
)

const (
	DefaultWorkers      = 3
	DefaultRequestsPath = "requests.txt"
)

// Logging
const (
	LogFormatColorful = "colorful"
	LogFormatJSON     = "json"
)

var LogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}
