// Package model holds the domain entities of the service and their JSON
// wire representation.
package model
