// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config resolves the settings cr8cert runs with.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults
//  2. An optional JSON or YAML file, named by the --config flag or the
//     CR8CERT_CONFIG_FILE environment variable
//  3. The ROOTCA environment variable for the root CA directory
//  4. Command-line flags, applied by the caller through [Overrides]
//
// Example YAML file:
//
//	rootDir: /home/dev/.cr8cert
//	outputDir: ./certs
//	validityDays: 825
//	rsaBits: 3072
//	organization: Acme dev CA
package config
