// Package dataprocessing decodes uploaded spreadsheets into tables.
//
// A Parser holds one Decoder per backend (xlsx, legacy xls, csv) and tries
// them in an order chosen from the file extension. The first backend that
// succeeds wins; when all of them fail the caller gets a DecodeError listing
// every backend's reason, which unwraps to ErrUnsupportedFormat.
//
// # Usage
//
//	parser := dataprocessing.NewParser(logger)
//	tbl, err := parser.Decode(ctx, "journal.xlsx", content)
//	if errors.Is(err, dataprocessing.ErrUnsupportedFormat) {
//	    // report the combined reasons to the uploader
//	}
package dataprocessing
