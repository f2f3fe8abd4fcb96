// Package errors defines the bridge error taxonomy.
//
// Every failure the bridge reports is a typed error carrying the tool name,
// phase, and underlying cause, plus sentinel errors for errors.Is checks.
// The public package re-exports these types.
package errors
