// Package config defines the application's configuration structures and
// loads them from environment variables and optional config files, with
// validation at startup so misconfiguration fails fast.
package config
