// Package counter is a console app holding one integer that can be
// incremented, decremented, reset, exported and imported.
package counter
