// Package harness renders a signal through an effect under test and
// evaluates registered pass/fail checks against the output. A Test is
// assembled with a fluent builder, runs the render loop block by block,
// collects expectation failures into a Result and aborts with an
// AssertionError when an assert-level check trips. Results plug into the
// standard go test runner through Result.Report.
package harness
