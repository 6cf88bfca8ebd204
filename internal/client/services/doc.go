// Package services holds the client's application services: authentication
// against the encrypted auth endpoints, and Directory, which drives every
// list view (fetch everything once, filter and page locally, degrade to an
// empty page on failure) and bridges show → update through the session stash.
package services
