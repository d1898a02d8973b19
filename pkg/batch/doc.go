// Package batch groups a pulled sequence into fixed-size ordered batches.
//
// A Batcher drains up to N items from its Source on every call to Next and
// hands them back as one slice. Nothing is read ahead: at most one batch is
// held in memory, and the source is only pulled when the consumer asks.
//
// # Usage
//
//	b, err := batch.New[domain.Record](src, 1000)
//	if err != nil {
//	    return err
//	}
//	for {
//	    items, err := b.Next(ctx)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // len(items) == 1000, except possibly the last batch
//	}
//
// An empty source yields no batches: the first call to Next returns io.EOF.
package batch
