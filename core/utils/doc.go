// Package utils provides common helpers shared by the stores and the HTTP layer.
// It includes loose type conversion for values decoded from schemaless stores, parsing of
// request parameters, and cleanup of the free-form Extra maps carried by stops and buses.
package utils
