// Package integration exercises the services together against a real working directory.
package integration
