// Package status exposes a reachability probe for the service's
// dependencies: the CMS database, the CRM access configuration and the
// optional payload archive bucket.
//
// # HTTP Endpoints
//
//   - GET /status : aggregated dependency report with the build version.
package status
