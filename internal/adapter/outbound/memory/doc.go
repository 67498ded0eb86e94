// Package memory provides in-process implementations of the outbound
// storage ports. Each store guards its map with a mutex that is never held
// across a blocking call. Uniqueness rules match the SQL schema.
package memory
