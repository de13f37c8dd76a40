// Package choices provides named option sources for select fields and a
// search endpoint over them.
//
// The built-in sources are "timezones" (canonical IANA zones) and
// "amount_types". Field files refer to them by name:
//
//	fields:
//	  store_timezone:
//	    type: select
//	    provider: timezones
package choices
