// Package testutil provides fixtures shared by package tests: METS documents
// written into temp workspaces and an in-memory Resolver that counts calls.
package testutil
