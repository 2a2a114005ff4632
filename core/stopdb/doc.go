// Package stopdb stores stops in a SQL database through GORM.
//
// Stops live in the "stops" table:
//
//	id       INTEGER PRIMARY KEY
//	name     TEXT
//	lat, lon REAL (nullable, set together)
//	other    TEXT  JSON encoded Extra
//	saved    INTEGER  unix time of the first insert
//	updated  INTEGER  unix time of the last write
//
// The store implements the Stop Getter, Setter and Deleter roles of the resolver and is
// registered as an offline source. Reads surface "saved" and "updated" in Stop.Extra;
// writes never persist those two keys inside "other".
package stopdb
