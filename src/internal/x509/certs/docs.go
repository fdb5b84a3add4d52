// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides encoding and decoding of [X.509] certificates and their
// private keys. Certificates are written as [PEM] "CERTIFICATE" blocks and read back
// from PEM, DER or [PKCS7] input; private keys are written as PKCS#8 "PRIVATE KEY"
// blocks and read back in any encoding cfssl understands.
//
// The root CA store and the leaf issuer use this package for every file they persist.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
