// Package nbspace converts localization files between the sheet layout
// (one variable per row, one language per column) and the flat tab-separated
// layout (one language per row), normalizing non-breaking spaces on the way.
//
// A Converter processes a batch of files in order. Every file gets its own
// change log, a failing file never stops the rest of the batch, and the
// aggregate error joins one FileError per failure:
//
//	conv := nbspace.New(
//	    nbspace.WithProfile(profile),
//	    nbspace.WithOutputCharset(charset.MacRoman),
//	    nbspace.WithStorage(store),
//	    nbspace.WithLogger(log),
//	)
//	batch, err := conv.SheetToFlat(ctx, files)
//	for _, out := range batch.Outputs {
//	    fmt.Println(out.Name, out.Log.Len())
//	}
//	if err != nil {
//	    // one or more files failed; successful outputs are still in batch
//	}
//
// Output names follow the input: "menu [A1].xlsx" becomes "menu [A1].txt"
// and the bracketed segment fills the code column of the flat file.
package nbspace
