// Package client talks to the upstream product API.
//
// This package is internal to ProductBoard. It issues the two requests the
// dashboard needs:
//
//   - [Client.FetchProducts]: GET {base}/api/product, normalised into a flat list
//   - [Client.ProbeHealth]: GET {base}/health, mapped to online or offline
//
// Neither request is retried. Failures of FetchProducts are reported as
// [*NetworkError] regardless of cause.
package client
