// Package config defines the settings that shape a generation run, along
// with the HCL loader for the settings file.
//
// Settings come from three layers applied in order: the built-in defaults,
// the HCL settings file, and command-line overrides. Expressions in the
// file can read the process environment through the `env` object, e.g.
// `api_key = env.JILGEN_API_KEY`.
package config
