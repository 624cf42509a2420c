// Package holdings values a personal investment portfolio kept in a
// spreadsheet. It is designed to be run on demand, reading the spreadsheet
// fresh each time and never writing it back.
//
// The core functionalities include:
//   - Loading: reading holdings from an .xlsx or .csv file, coercing numeric
//     cells and keeping blank or malformed cells as explicit absences.
//   - Price Update: resolving display symbols to equity or crypto quote
//     identifiers, fetching the latest prices and keeping the stored price
//     whenever a fetch fails.
//   - Valuation: recomputing market value, profit/loss and profit/loss ratio,
//     appending the cash position and ranking holdings by portfolio weight.
//   - Consistency Checks: advisory warnings for rows whose figures look stale.
//
// Price sources live in the eodhd, alpaca and coingecko packages, rendering
// lives in the renderer package and the `hold` command-line tool is
// implemented by the cmd package.
package holdings
