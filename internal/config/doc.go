// Package config handles the optional ocrdws.yaml file that tunes how a
// workspace serializes its manifest and how the resolver fetches files.
package config
