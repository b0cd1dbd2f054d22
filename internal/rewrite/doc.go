// Package rewrite applies the translation pipeline to files on disk.
//
// A Rewriter handles one path at a time: read, translate, optionally confirm,
// optionally back up, then atomically replace. RewriteAll runs a batch
// strictly in argument order and never stops on a single failing file; only
// context cancellation ends a batch early.
package rewrite
