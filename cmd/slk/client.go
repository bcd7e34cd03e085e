package main

import (
	"github.com/slk-tools/slk/internal/config"
	"github.com/slk-tools/slk/internal/slack"
)

// mustNewClient builds a Slack client from the resolved credential, or
// exits with a config error if no token is available.
func mustNewClient() *slack.Client {
	token, err := config.ResolveToken()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	client, err := slack.NewClient(token)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return client
}

// defaultLimit returns the configured default for a command family when
// the user did not pass --limit, falling back to the built-in default.
func defaultLimit(configured, builtin int) int {
	if configured > 0 {
		return configured
	}
	return builtin
}

// configuredDefaults loads limit defaults from the global config,
// tolerating a missing or unreadable file.
func configuredDefaults() config.GlobalConfig {
	cfg, err := config.LoadGlobalConfig()
	if err != nil || cfg == nil {
		return config.GlobalConfig{}
	}
	return *cfg
}
