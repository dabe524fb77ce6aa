// Package engines contains synthesis engine implementations. The only
// production engine shells out to the edge-tts command line tool, which
// fronts a network synthesis service.
package engines
