// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package json5 implements a lexical scanner and a parser for JSON5, a
// superset of JSON that permits comments, unquoted object keys, single
// quoted strings, trailing commas, numbers in hexadecimal, octal, and
// binary notation, and the IEEE special values Infinity and NaN.
//
// Any valid JSON document is also valid JSON5.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON5.  Construct a
// scanner from an io.Reader and call its Next method to iterate over the
// stream.  Next advances to the next input token and returns nil, or
// reports an error:
//
//	s := json5.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed.  Any other
// error indicates an I/O or lexical error in the input.
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// Token text is delivered decoded: a String token carries the content of
// the literal with quotes removed and escapes resolved, and a number token
// carries its digits without radix prefix or separators.  Comments are
// consumed and skipped unless ReportComments is enabled.
//
// # Parsing
//
// The Parser type implements a recursive-descent parser over the token
// stream of a Scanner, with one token of lookahead.  Each parse method
// asserts the form of the next value and consumes exactly the tokens
// belonging to it:
//
//	p := json5.NewParser(input)
//	v, loc, err := p.ParseNumber()
//
// A failed expectation is reported as an *Error carrying the location of
// the offending token:
//
//	at 2:17: expected a number, got string
//
// # Visitors
//
// The compound parse methods deliver structure to visitor interfaces
// instead of materializing it, so a caller can build directly into its own
// representation or discard what it does not need:
//
//	JSON5 form | Method      | Visitor
//	---------- | ----------- | -----------------------------------
//	any value  | ParseValue  | ValueVisitor
//	object     | ParseObject | PropertyVisitor, one call per member
//	array      | ParseArray  | ValueVisitor, one call per element
//
// A ValueVisitor receives primitive values decoded.  For a nested object
// or array it receives the parser itself, and must consume the whole
// nested value before returning, typically by calling ParseObject,
// ParseArray, or Skip.  Embedding a VisitorBase rejects the value kinds a
// visitor does not implement.
//
// To materialize values as trees instead, use the ast subpackage.  To
// encode and decode arbitrary Go values, use the codec subpackage.
package json5
