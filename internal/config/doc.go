// SPDX-License-Identifier: MPL-2.0

// Package config loads envcmd settings with Viper, using CUE as the file
// format.
//
// Settings come, in increasing precedence, from built-in defaults, the CUE
// file at $XDG_CONFIG_HOME/envcmd/config.cue (or the file named by --config),
// and ENVCMD_* environment variables. Files are validated against the
// embedded config_schema.cue.
package config
