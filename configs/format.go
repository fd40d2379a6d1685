package configs

// resolve returns the first non-empty value from:
// 1. the override source (environment by default)
// 2. the config file value
// 3. empty string, caller applies its own default
func (c *Config) resolve(key string, fileValue string) string {
	if v, err := EnvSource().Get(key); err == nil {
		return v
	}
	if c != nil {
		return fileValue
	}
	return ""
}

// GetOutputFormat resolves the output format name.
func (c *Config) GetOutputFormat() string {
	if c == nil {
		return c.resolve(EnvOutputFormat, "")
	}
	return c.resolve(EnvOutputFormat, c.OutputFormat)
}

// GetDefinitionPath resolves the definition file path.
func (c *Config) GetDefinitionPath() string {
	if c == nil {
		return c.resolve(EnvDefinition, "")
	}
	return c.resolve(EnvDefinition, c.DefinitionPath)
}
