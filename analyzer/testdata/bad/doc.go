// Package bad has templates with errors.
package bad
