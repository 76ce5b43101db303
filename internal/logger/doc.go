// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder and a file sink for the clock UI,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and convenience functions (Infof, WarnKV, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, enabling
// scoped, structured logging throughout the codebase.
package logger
