// Package logger wraps zap with a global sugared logger and context helpers.
//
// Services name their logger once (WithName) and pass it down through the
// context, so every message of an operation carries the same scope.
package logger
