// Package ozone estimates total-column atmospheric ozone with the empirical
// van Heuklon (1979) model.
//
// # Model
//
// Van Heuklon, T. K. (1979). Estimating atmospheric ozone for solar radiation
// models. Solar Energy, 22(1), 63-68.
//
// For latitude φ, longitude λ (degrees) and day-of-year E:
//
//	bracket  = A + C·sin(D·(E + F)) + G·sin(H·(λ + I))
//	sine_bit = sin²(B·φ)
//	ozone    = J + bracket·sine_bit
//
// Every sine argument is in degrees. The result is in milli-atmosphere
// centimeters (matm-cm, numerically equal to Dobson units).
//
// # Coefficients
//
// D, G and J do not depend on location:
//
//	D = 0.9865   G = 20.0   J = 235.0
//
// A, B, C, F, H and I come from a hemisphere profile:
//
//	           A      B     C     F        H    I
//	Northern   150.0  1.28  40.0  -30.0    3.0  20.0 (0.0 when λ ≤ 0)
//	Southern   100.0  1.5   30.0  152.625  2.0  -75.0
//
// The hemisphere test is strict: φ < 0 is Southern, so the equator uses the
// Northern profile. At φ = 0 sine_bit vanishes and the estimate is exactly J.
//
// # Inputs
//
// Latitude and longitude are passed as a [Location], built with [Scalar] or
// [Series]. Timestamps are a [TimeInput]: [At] and [Text] apply one instant to
// every location, [Times] and [Texts] supply one per location. Text is parsed
// with [ParseTimestamp], which accepts most human and machine date formats;
// ISO 8601 (yyyy-mm-dd) is the safest choice.
package ozone
