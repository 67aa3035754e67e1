// Package streams provides the primitives shared by the stream rendering engine.
//
// The package defines the values that flow between the engine's components:
//
//   - [StreamID]: non-negative stream identifier
//   - [Role]: active or background classification for one render
//   - [Stream]: one stream's position, sampled value and node path
//   - [Vec3]: Cartesian point in the heliocentric frame
//
// It also holds the error taxonomy. Each sentinel ([ErrConfig], [ErrDomain],
// [ErrUnknownStream], [ErrIncompleteConfig]) is wrapped by a typed error that
// carries context, so callers can use either errors.Is or errors.As:
//
//	var unknown *streams.UnknownStreamError
//	if errors.As(err, &unknown) {
//	    fmt.Println(unknown.IDs)
//	}
package streams
