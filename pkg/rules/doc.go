// Package rules defines the toggles that control which normalization rules run.
//
// Settings is a plain value: every field defaults to true and callers pass it
// by value, so the engine never observes a change mid-run. A Profile carries
// one Settings per conversion direction, and can be loaded from YAML where
// each key is optional and absent keys keep their default:
//
//	sheet_to_flat:
//	  currency_formatting: false
//	flat_to_sheet:
//	  language_rules: false
//
// NumericFormatting is a master switch over number separators, percent and
// currency formatting. Unit spacing and unit case have their own switches.
package rules
