// Package hubspot provides a minimal HubSpot CRM v3 API client.
//
// It covers exactly the two operations the sync engine needs:
//
//   - Search: the paginated POST search endpoint for contacts and
//     companies, filtered to records whose CMS identifying property is
//     numerically greater than zero.
//   - UpdateProperties: the PATCH endpoint that writes CMS field values
//     onto a single CRM record.
//
// Non-2xx responses on property updates are reported as a PushResult
// with the response body attached, not as errors; a failed push on one
// record must not abort a surrounding batch sweep.
package hubspot
