// Package rendercache provides the bounded, time expiring LRU used to
// memoise rendered markdown by content fingerprint.
package rendercache
