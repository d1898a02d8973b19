// Package archive streams members out of gzip-compressed tar archives.
//
// The compressed stream is read once, front to back. Only the member being
// returned is held in memory, so a multi-gigabyte archive is processed in
// memory proportional to its largest matching member.
//
// # Usage
//
//	r, err := archive.Open("lmd_matched_h5.tar.gz", ".h5", archive.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    entry, err := r.Next(ctx)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // entry.ID is the filename stem, e.g. "TRAAAGR128F425B14B"
//	}
//
// Members that are not regular files, do not carry the suffix, are empty,
// or cannot be extracted are skipped without an error. A reader cannot be
// rewound; open the archive again to start over.
package archive
