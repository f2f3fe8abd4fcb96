// Package catalog caches the filtered tool catalog for a bridge session.
//
// Filtering is a pure set operation applied once after catalog retrieval.
// Exclude takes precedence over include for any overlapping tool name.
package catalog
