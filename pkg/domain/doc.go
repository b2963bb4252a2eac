/*
Package domain defines the core types shared by every layer of Atrium.

It contains the service envelope (the uniform result wrapper returned by all
facade operations), the alumni-platform entities (job postings, applications,
directory profiles), the persisted session state, and the sentinel errors
used across adapters.
*/
package domain
