// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the per-account stacks and runs the selected
// accounts through the generate-login-upload flow. It is the only package
// that knows how the pieces fit together; everything below it is wired
// through constructors and interfaces.
package client
