// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// cr8cert creates locally-trusted TLS certificates for development.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/cr8cert/cmd/cr8cert@latest
//
// # Usage
//
//	cr8cert [--install] [--create HOST...] [--uninstall] [FLAGS]
//
// # Flags
//
//	-i, --install       Create the local root CA and register it with the system trust store
//	-u, --uninstall     Remove the root CA from the trust store and delete it
//	-c, --create        Issue cert.pem and key.pem for the given hosts
//	    --table         Print the issued certificates as a markdown table
//	    --tree          Print the issued certificates as an ASCII tree
//	    --config        Path to a JSON or YAML configuration file
//	    --root-dir      Root CA directory
//	    --output-dir    Directory receiving cert.pem and key.pem
//	    --days          Validity of new certificates in days
//	    --bits          RSA key size (2048, 3072 or 4096)
//	    --json-log      Log as JSON lines
//	    --version       Show version information
//
// # Environment Variables
//
//	ROOTCA               Root CA directory (overridden by --root-dir)
//	CR8CERT_CONFIG_FILE  Path to configuration file (alternative to --config flag)
//
// # Examples
//
// Install the root CA, then issue a certificate for local development:
//
//	cr8cert --install
//	cr8cert --create localhost 127.0.0.1 ::1
//
// Registering or removing the root CA runs the platform's trust store utility
// (security, update-ca-certificates or certutil) and may prompt for a password.
package main
