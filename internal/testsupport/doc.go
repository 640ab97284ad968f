// Package testsupport provides shared test fixtures: configs seeded with
// temp directories, a fake chat completion endpoint, and a fake Jikan catalog.
package testsupport
