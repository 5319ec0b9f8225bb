// Package authsdk provides a Go client for the Quickplate authentication
// service along with the request and response types shared between the
// server handlers and consumers of the API.
//
// The client keeps a cookie jar so the anonymous flow session survives
// across calls, mirroring how a browser would drive the login flow.
package authsdk
