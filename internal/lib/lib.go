// Package lib groups modules that do not fit strictly into a layer.
//
// Subpackages:
//   - cache: Redis cache-aside helpers honouring the bypass-cache flag
//   - email: approval notification emails sent through Resend
//   - identity: the authenticated caller carried in context.Context
//   - job: background tasks and the periodic scheduler (Asynq)
//   - utils: small JSON helpers shared by response shaping
package lib
