// Package resolver materializes remote files into a workspace directory.
// The Default resolver understands file://, http(s):// and s3:// URLs and
// owns every transport concern: retries, backoff and timeouts.
package resolver
