// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for cr8cert.
//
// It implements a Cobra-based root command that installs or removes the local root CA,
// issues leaf certificates for one or more hosts and optionally prints what it produced
// as a table or ASCII tree. Errors are returned to the caller, which decides the exit
// status; nothing in this package terminates the process.
package cli
