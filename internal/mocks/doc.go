// Package mocks holds testify mocks of the repository and service
// interfaces for service-level tests.
package mocks
