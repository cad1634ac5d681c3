package command

const (
	FlagEnvFile = "env-file"
	FlagCost    = "cost"

	defaultEnvFile = ".env"
)
