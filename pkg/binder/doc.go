// Package binder fills request structs from HTTP requests. JSON decodes a
// size-limited body; Path copies router parameters into `path`-tagged fields.
package binder
