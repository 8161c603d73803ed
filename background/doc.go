// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - control of background processes
//
// starts a list of background processes and provides a single Stop
// that shuts them all down and waits for their termination
package background
