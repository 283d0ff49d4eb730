// Package config handles configuration loading for daybook.
//
// Configuration is loaded from YAML files with ${VAR_NAME} environment
// variable expansion and validated before use. Sections:
//
//	database:
//	  path: "${HOME}/.local/share/daybook/journals.db"
//
//	media:
//	  picker_command: "/usr/local/bin/daybook-picker"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
