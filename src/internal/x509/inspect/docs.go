// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package inspect renders the certificates cr8cert produced for a human to read,
// either as a markdown table or as an ASCII tree ordered from leaf to root.
package inspect
