// Package scan produces the ordered stream of raw input lines the repair
// engine consumes.
//
// It owns line numbering, the line-length cap, and source-encoding
// concerns: byte-order-mark sniffing, UTF-16 and Latin-1 transcoding, and
// the decision of whether per-line UTF-8 validation is still required
// downstream. Returned line text is always a private copy so lines can be
// handed to concurrent workers safely.
package scan
