// Package errs defines the error vocabulary of the API.
//
// It holds three families of errors:
//   - error kinds (ErrNotFound, ErrPermission, ...) returned by services and
//     repositories, matched with errors.Is
//   - HTTPError, the body returned by self-service endpoints
//   - IntegrationAPIError, the Ethos v2 error body returned by integration
//     (EEDM) endpoints
//
// Handlers translate kinds into one of the two response shapes; the global
// error handler only renders them.
package errs
