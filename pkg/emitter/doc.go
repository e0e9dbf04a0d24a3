// Package emitter writes scaffolds to disk.
//
// A run has two phases. CreateDirectories ensures every listed directory
// exists, then WriteFiles writes the content map in lexical path order. Every
// path is validated against the base directory before anything is touched,
// so a scaffold that would escape the base fails without side effects.
//
// In direct mode the first filesystem error aborts the run and whatever was
// already written stays on disk; the returned RunResult lists exactly those
// entries. Transactional mode hands the whole plan to a Transactor which
// undoes partial work on failure.
package emitter
