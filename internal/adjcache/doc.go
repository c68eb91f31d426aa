// Package adjcache stores the adjacency records fetched for a playlist in a
// SQLite file so later runs can assemble sets without touching the network.
//
// The cache holds exactly one snapshot. Save replaces it atomically, Load
// returns ErrNoSnapshot until the first Save, and Clear forces the next run
// to fetch again. Schema changes ship as embedded migrations.
package adjcache
