// Package utils provides common utility functions for the bridge application.
// It includes loose-typed conversion helpers used when reading values out of
// webhook payloads, where the same field may arrive as a string or a number.
package utils
