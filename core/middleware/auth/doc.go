// Package auth protects routes with a shared API key.
package auth
