// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package builder assembles and signs [X.509] v3 certificates for the local development CA.
//
// Two profiles are supported:
//
//   - Root CA: BasicConstraints{CA, pathLen=0} and KeyUsage{certSign, cRLSign}, both
//     critical, plus a SubjectKeyIdentifier. The certificate is self-signed, so no
//     AuthorityKeyIdentifier is emitted.
//   - Leaf: BasicConstraints{not CA} and KeyUsage{digitalSignature, keyEncipherment},
//     both critical, ExtendedKeyUsage{serverAuth}, a SubjectAlternativeName with one
//     entry per requested host in request order, a SubjectKeyIdentifier for the leaf
//     key and an AuthorityKeyIdentifier equal to the issuer's SubjectKeyIdentifier.
//
// All certificates are signed with SHA-256 and RSA. The package performs no I/O.
//
// [X.509]: https://grokipedia.com/page/X.509
package builder
