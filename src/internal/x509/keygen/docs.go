// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package keygen produces fresh RSA key pairs for the root CA and for leaf certificates.
// Every call draws new randomness; keys are owned by the caller once returned.
package keygen
