// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package rootca persists the local development root CA.
//
// The CA lives in a single directory holding exactly two files:
//
//   - rootCA.pem: the self-signed certificate, PEM encoded
//   - rootCA-key.pem: its private key, PEM encoded PKCS#8
//
// The directory comes from the ROOTCA environment variable or, when unset, from a
// per-OS application data directory (see [LocateRoot]).
//
// [Store.LoadOrCreate] is the only way the CA gets created. It holds an exclusive
// file lock, placed next to the directory, while it checks for and writes the two
// files, so concurrent invocations agree on a single CA. The presence of both files
// is the only signal that a CA exists; a lone certificate or key is regenerated.
package rootca
