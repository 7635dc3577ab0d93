// Package core provides the sample-type constraint, numeric conversions and
// the error taxonomy shared by every other package in the module. All audio
// math is expressed in terms of the Sample constraint so that components are
// monomorphized for float32 and float64 without runtime dispatch.
package core
