// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package issuer is the entry point for the two things cr8cert does: make sure a
// local root CA exists and is trusted by the system, and sign leaf certificates
// with it.
//
// A typical flow:
//
//	cfg, _ := config.Load("", config.Overrides{})
//	iss := issuer.New(cfg, truststore.NewSystem(log), log)
//
//	if _, err := iss.EnsureCAInstalled(ctx); err != nil {
//		return err
//	}
//	res, err := iss.IssueToDir(ctx, []string{"localhost", "127.0.0.1"})
//
// The root CA is created at most once per directory. When it already exists on disk
// it is assumed to be registered with the trust store and is not registered again.
package issuer
