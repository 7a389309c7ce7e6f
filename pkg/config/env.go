package config

// EnvPrefix is intentionally empty; every field carries its full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "GIFTFLOW_DB_DSN"
	EnvDBHost = "GIFTFLOW_DB_HOST"
	EnvDBUser = "GIFTFLOW_DB_USER"
	EnvDBName = "GIFTFLOW_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
