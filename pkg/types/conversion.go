// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one input file.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionSource records where a conversion was requested.
type ConversionSource string

const (
	SourceHTTP  ConversionSource = "http"
	SourceCLI   ConversionSource = "cli"
	SourceBatch ConversionSource = "batch"
)

// Conversion pairs a Greek input with its ELOT 743 transliteration. The
// JSON field names are the wire format of the HTTP endpoint.
type Conversion struct {
	// ID is a UUID assigned when the conversion is recorded.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// GreekText is the original input.
	GreekText string `json:"greektext" yaml:"greektext"`

	// LatinText is the transliterated output.
	LatinText string `json:"elot743text" yaml:"elot743text"`

	// Source identifies the caller ("http", "cli", "batch").
	Source ConversionSource `json:"source,omitempty" yaml:"source,omitempty"`

	// CreatedAt is set when the conversion is recorded.
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}
