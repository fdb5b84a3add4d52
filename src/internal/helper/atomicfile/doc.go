// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package atomicfile writes files so that readers never observe partial content.
//
// Each file is written to a temporary sibling, synced, and renamed into place.
// A [Batch] groups several files: nothing is renamed until every temporary file
// has been written, and a failed rename removes the files already committed
// by the same batch.
package atomicfile
