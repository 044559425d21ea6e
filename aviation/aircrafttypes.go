// aviation/aircrafttypes.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

// aircraftDisplayNames maps ICAO type designators to short marketing names
// that fit the 64 pixel info row. Types not listed fall back to the model
// text reported by the feed.
var aircraftDisplayNames = map[string]string{
	"A19N": "A319neo",
	"A20N": "A320neo",
	"A21N": "A321neo",
	"A318": "A318",
	"A319": "A319",
	"A320": "A320",
	"A321": "A321",
	"A332": "A330-200",
	"A333": "A330-300",
	"A339": "A330-900",
	"A343": "A340-300",
	"A346": "A340-600",
	"A359": "A350-900",
	"A35K": "A350-1000",
	"A388": "A380",
	"B37M": "737 MAX 7",
	"B38M": "737 MAX 8",
	"B39M": "737 MAX 9",
	"B3XM": "737 MAX 10",
	"B736": "737-600",
	"B737": "737-700",
	"B738": "737-800",
	"B739": "737-900",
	"B744": "747-400",
	"B748": "747-8",
	"B752": "757-200",
	"B753": "757-300",
	"B762": "767-200",
	"B763": "767-300",
	"B764": "767-400",
	"B772": "777-200",
	"B773": "777-300",
	"B77L": "777-200LR",
	"B77W": "777-300ER",
	"B788": "787-8",
	"B789": "787-9",
	"B78X": "787-10",
	"BCS1": "A220-100",
	"BCS3": "A220-300",
	"CRJ2": "CRJ-200",
	"CRJ7": "CRJ-700",
	"CRJ9": "CRJ-900",
	"CRJX": "CRJ-1000",
	"E135": "ERJ-135",
	"E145": "ERJ-145",
	"E170": "E170",
	"E175": "E175",
	"E190": "E190",
	"E195": "E195",
	"E290": "E190-E2",
	"E295": "E195-E2",
	"E75L": "E175",
	"E75S": "E175",
	"AT43": "ATR 42",
	"AT45": "ATR 42-500",
	"AT72": "ATR 72",
	"AT75": "ATR 72-500",
	"AT76": "ATR 72-600",
	"DH8A": "Dash 8-100",
	"DH8B": "Dash 8-200",
	"DH8C": "Dash 8-300",
	"DH8D": "Dash 8-400",
	"F100": "Fokker 100",
	"F70":  "Fokker 70",
	"MD88": "MD-88",
	"MD90": "MD-90",
	"SF34": "Saab 340",
	"SB20": "Saab 2000",
}
