// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package truststore registers the root CA certificate with the operating system's
// trusted-root set and removes it again.
//
// The work is delegated to the platform's own utilities, run with elevated
// privileges where the platform requires them:
//
//   - macOS: security add-trusted-cert / remove-trusted-cert on the System keychain
//   - Linux: a copy under the distribution's CA anchor directory, then
//     update-ca-certificates or update-ca-trust
//   - Windows: certutil -addstore / -delstore on the ROOT store
//
// Commands run through a [Runner] so callers can substitute their own executor.
// Calls block until the utility exits, including any credential prompt it shows.
package truststore
