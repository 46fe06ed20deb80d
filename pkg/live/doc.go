// Package live serves scheduler-driven widgets over a WebSocket.
//
// Each connection gets its own scheduler session: incoming JSON event
// frames are dispatched through FlushSync, and the committed output is
// pushed back after every flush. It exists to exercise the scheduler end to
// end outside of tests; the wire format is deliberately plain JSON.
package live
