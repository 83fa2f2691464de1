// Package notepad is a console app holding a single text note. Text is
// appended verbatim, so leading and trailing whitespace survive.
package notepad
