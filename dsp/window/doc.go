// Package window generates analysis window functions for spectral
// checks. Windows are symmetric; coefficients are meant to be multiplied
// onto a signal span before an FFT.
package window
