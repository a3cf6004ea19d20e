// Package migrate drives the conversion of templated SQL scripts.
//
// A Session owns all state of one conversion: the variable set, the open
// statement, the growing body and the table mappings. Lines are fed through
// the scanner and the accumulator; each closed statement is classified and
// handed to the dialect's emitter. Run wraps a Session around an io.Reader,
// Convert around files on disk, and Batch and Watch around Convert.
package migrate
