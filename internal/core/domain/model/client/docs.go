// Package client models the workshop's counterparties and their lifetime metal
// accounts.
package client
