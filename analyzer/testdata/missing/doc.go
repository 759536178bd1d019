// Package missing has a template without variants file.
package missing
