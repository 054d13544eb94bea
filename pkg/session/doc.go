/*
Package session keeps one Runner per user for multi-user hosts.

Sessions are keyed by UUID and only hold the current state of their runner;
there is no run history. Idle sessions can be pruned after a TTL.
*/
package session
