package attr

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// Process wide codec counters. Only top level sequences are counted as objects;
// nested objects inside custom blocks show up in the custom block counter.
var (
	objectsEncoded = metrics.NewCounter(`sio_objects_encoded_total`)
	objectsDecoded = metrics.NewCounter(`sio_objects_decoded_total`)
	encodeErrors   = metrics.NewCounter(`sio_encode_errors_total`)
	decodeErrors   = metrics.NewCounter(`sio_decode_errors_total`)
	unknownSkipped = metrics.NewCounter(`sio_unknown_attributes_skipped_total`)
	customBlocks   = metrics.NewCounter(`sio_custom_blocks_total`)
	encodedBytes   = metrics.NewHistogram(`sio_encoded_object_bytes`)
)

// observeEncode records the outcome of one Schema.Encode call
func observeEncode(depth int, size int64, err error) {
	if err != nil {
		encodeErrors.Inc()
		return
	}
	if depth == 0 {
		objectsEncoded.Inc()
		encodedBytes.Update(float64(size))
	}
}

// observeDecode records the outcome of one Schema.Decode call
func observeDecode(depth int, err error) {
	if err != nil {
		decodeErrors.Inc()
		return
	}
	if depth == 0 {
		objectsDecoded.Inc()
	}
}

// WriteMetrics writes all codec metrics in Prometheus text format to w
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
