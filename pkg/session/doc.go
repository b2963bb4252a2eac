/*
Package session orchestrates access to the persisted session state: who the
current actor is and what search they last committed.

It provides the ActorProvider consumed by cache-key construction and facade
calls, serializes concurrent mutations per session, and fires an end-of-
session hook so dependent state (the derived-query cache) can be cleared on
logout.
*/
package session
