// Package clientip resolves the address of the client behind trusted proxies
// and carries it in the request context for handlers and log records.
package clientip
