package transport

import (
	"io"

	"github.com/netdevssh/netdevssh/pkg/concurrency/xbufpool"
)

type chunk struct {
	data []byte
	err  error
}

// stream pumps one underlying io.Reader into a channel with a single,
// long-lived goroutine. A Connection owns exactly one stream for its
// stdout pipe so that successive ChannelReader.Read calls (banner
// discard, prompt discovery, command echo verification, command
// response) consume a single ordered byte sequence instead of racing
// independent goroutines against the same pipe.
type stream struct {
	chunks chan chunk
}

func newStream(src io.Reader, pool *xbufpool.Pool) *stream {
	s := &stream{chunks: make(chan chunk, 1)}
	go s.pump(src, pool)
	return s
}

// pump runs until src.Read returns an error (EOF or a closed channel),
// copying each chunk out of a pool-acquired buffer before handing it to
// the channel. A Read call that stops consuming early (e.g. because it
// matched its terminator, or a timeout fired) leaves this goroutine
// blocked on its next channel send until a later Read call drains it —
// there is no byte loss, only backpressure.
func (s *stream) pump(src io.Reader, pool *xbufpool.Pool) {
	for {
		buf := pool.Acquire(defaultReadBufferSize)
		buf = buf[:cap(buf)]
		n, err := src.Read(buf)
		c := chunk{data: append([]byte(nil), buf[:n]...), err: err}
		pool.Release(buf)
		s.chunks <- c
		if err != nil {
			return
		}
	}
}
