package decoder

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/ik5/flacstream/meta"
)

// recorder is a Handler that remembers every callback.
type recorder struct {
	src ByteSource

	records []meta.Record
	lasts   []bool
	headers []FrameHeader
	samples [][][]int32
	errs    []ErrorKind

	// abortAt makes WriteFrame return WriteAbort for the n-th frame (1 based).
	abortAt int
	// onWrite runs inside WriteFrame.
	onWrite func(b *FrameBlock)
}

func newRecorder(data []byte) *recorder {
	return &recorder{src: ReaderSource(bytes.NewReader(data))}
}

func (r *recorder) Read(buf []byte) (int, ReadStatus) { return r.src.Read(buf) }

// Err forwards the abort cause of the wrapped source.
func (r *recorder) Err() error {
	if e, ok := r.src.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

func (r *recorder) WriteFrame(b *FrameBlock) WriteStatus {
	h := b.Header()
	r.headers = append(r.headers, h)

	chans := make([][]int32, h.Channels)
	for i := range chans {
		chans[i] = make([]int32, h.BlockSize)
		b.CopyChannel(chans[i], i)
	}
	r.samples = append(r.samples, chans)

	if r.onWrite != nil {
		r.onWrite(b)
	}
	if r.abortAt > 0 && len(r.headers) == r.abortAt {
		return WriteAbort
	}
	return WriteContinue
}

func (r *recorder) OnError(kind ErrorKind) { r.errs = append(r.errs, kind) }

func (r *recorder) OnMetadata(rec meta.Record, isLast bool) {
	r.records = append(r.records, rec)
	r.lasts = append(r.lasts, isLast)
}

// openFailer is a recorder whose source cannot be opened.
type openFailer struct {
	*recorder
	err error
}

func (o openFailer) Open() error { return o.err }

func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
