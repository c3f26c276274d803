// Package redis opens a go-redis client, retrying until the server answers
// PING. The demo server stores sessions in it.
package redis
