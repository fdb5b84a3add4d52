// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//
// The cobra root command uses it so help output shows the binary name the user
// actually typed:
//
//   - Linux/macOS: "/usr/local/bin/cr8cert" → "cr8cert"
//   - Windows: "C:\bin\cr8cert.exe" → "cr8cert"
//   - Fallback: Empty args → "cr8cert"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
