// Package main is the entry point of the red-social-api application.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"red-social-api/internal"
)

func main() {
	internal.Init()
}
