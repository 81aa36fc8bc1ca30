// Package airtable implements the card sink for a hosted table API.
//
// Rows are listed page by page following the response offset, created with
// POST and updated with PUT, which replaces every field of the row. Cards are
// written as flat rows whose field names match the card JSON keys; the
// assignee list becomes a multiple select cell and the deadline a date cell.
//
// Writes are issued one at a time by the reconcile Applier, which spaces them
// to stay under the API rate limit.
package airtable
