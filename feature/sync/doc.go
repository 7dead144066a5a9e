// Package sync implements the CMS to HubSpot reconciliation feature.
//
// Inbound CRM payloads (webhook pushes or paginated search results) are
// classified by which identifying key they carry, matched against the
// CMS link tables, and pushed back to the CRM with normalized CMS
// attribute values:
//  1. Locator: determines entity type and extracts reference/record id.
//  2. Engine: conditional identity-link write, then attribute fetch and push.
//  3. Pager: sweeps the CRM search endpoint in pages of 100.
//
// # Components
//
//   - Service: the per-entity reconciliation engine and the batch pager.
//   - Handler: exposes the webhook and batch HTTP endpoints.
//   - PayloadArchive: optional write-only audit copy of raw webhook bodies.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /sync/webhook : process one JSON object or an array of objects.
//   - POST /sync/batch   : run a full paginated sweep (companies, then contacts).
package sync
