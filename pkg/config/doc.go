// Package config defines Settings, the process-wide defaults for
// timeouts, buffer sizing, pool limits and template caching, and loads
// optional overrides from a YAML/JSON file via pkg/config/xconf.
package config
