// Package table implements the card sink on a SQL table through GORM.
//
// It is the self-hosted alternative to the hosted table API: each card is a
// row keyed by a generated record ID, with the card ID unique. Updates rewrite
// every column. Assignees are stored as a JSON array and the deadline as a
// YYYY-MM-DD string. Prepare migrates the table and verifies its columns.
package table
