// Package utils holds small validation helpers shared across packages.
package utils
