// Package domain decodes METAR surface weather observations.
//
// # Data Source
//
// Reports are fetched as raw text from the aviationweather.gov data API
// (https://aviationweather.gov/api/data/metar?ids=KJFK&format=raw) or arrive
// on the pipeline's source topic. One report is a single line of
// whitespace-separated groups:
//
//	METAR KJFK 251651Z 27015G25KT 10SM FEW250 22/12 A3012 RMK AO2
//
// # Group Order
//
// Groups are decoded left to right in a fixed order, each section taking what
// it recognizes and leaving the rest for the next:
//
//	type      METAR | SPECI (optional)
//	station   any single group, e.g. KJFK
//	time      DDHHMMZ, day of month and UTC time
//	modifier  COR | AUTO | NIL (any number, ignored)
//	wind      dddssKT, dddssGggKT or VRBssKT, then optional dddVddd
//	vis       CAVOK | 9999 | nSM | meters
//	weather   [-|+|VC][descriptor]*phenomenon* (repeated)
//	clouds    FEWhhh | SCThhh | BKNhhh | OVChhh [CB|TCU], VVhhh, SKC, CLR, NSC, NCD
//	temp      TT/DD with M for negative values
//	altimeter Annnn (hundredths of inHg) | Qnnnn (hPa)
//	remarks   RMK followed by free-form groups, optionally ending in $
//
// CAVOK replaces visibility, weather and clouds with fixed descriptions and
// the weather and cloud sections are not decoded at all.
//
// # Units
//
//	Wind:        knots; direction in degrees true, labelled with an 8-point compass.
//	Visibility:  statute miles (SM suffix) or meters, shown as kilometers from 1000 m.
//	Cloud bases: hundreds of feet (BKN030 = 3000 feet).
//	Temperature: whole °C; °F = °C×9/5+32 in integer arithmetic.
//	Altimeter:   1 inHg = 33.8639 hPa; hPa is rounded to a whole number.
//
// # Tolerance
//
// Real reports are irregular, so decoding never fails. A group that does not
// fit the section at the cursor is either left for a later section or skipped,
// and the affected fields stay empty. Known gaps: fractional visibility such
// as 1/4SM is not decoded, and a group is classified as weather whenever it
// contains a phenomenon code anywhere, so a stray group such as TEMPO in the
// weather position is consumed as a weather group.
package domain
