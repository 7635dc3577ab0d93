// Package config carries engine-wide settings: the data root path against
// which relative audio file paths resolve, the default random seed for
// noise generators, and the decimal precision used when formatting values
// of each unit in failure reports.
package config
