// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the schema-unify-decode pattern used by the
// buildgraph and config packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed girder_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[manifest](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Girderfile",
//	    cueutil.WithFilename("girder.cue"),
//	)
//	if err != nil {
//	    return nil, err // Error includes the CUE path to the invalid field
//	}
//	return result.Value, nil
package cueutil
