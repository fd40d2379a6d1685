package configs

import "os"

const (
	// EnvOutputFormat overrides the configured output format.
	EnvOutputFormat = "CMDSET_OUTPUT_FORMAT"
	// EnvDefinition overrides the configured definition file.
	EnvDefinition = "CMDSET_DEFINITION"
)

var _ ConfigSource = (*envConfigSource)(nil)

type envConfigSource struct{}

// EnvSource returns the ConfigSource reading process environment variables.
func EnvSource() ConfigSource {
	return &envConfigSource{}
}

func (e *envConfigSource) Name() string {
	return "env"
}

func (e *envConfigSource) Get(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", ErrConfigNotFound
	}
	return value, nil
}
