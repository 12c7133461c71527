// Package units is the catalog of measurement units the normalizer binds to
// numbers and re-cases: electrical, power, energy, force, pressure, length,
// mass and volume tokens, plus composite units such as "km/h" or "m/s2".
package units
