/*
Package auth implements the administrator gate placed in front of admin endpoints.

The Gate resolves the session cookie against a ports.SessionStore and only lets
requests with a live administrator session through. Rejected requests never reach
the wrapped handler: unauthenticated callers are redirected to the login page (or
answered with 401 when none is configured) and non-admin users receive 403.
*/
package auth
