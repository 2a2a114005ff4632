// Package rayid tags every request with a ray id stored in the "ray_id" fiber local
// and echoed in the X-Ray-ID response header.
package rayid
